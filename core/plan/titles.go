package plan

import "strings"

// Resolution is the canonical reading of a section title.
type Resolution struct {
	Kind        Kind   `json:"kind" yaml:"kind"`
	Label       string `json:"label" yaml:"label"`
	Icon        Icon   `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// Matched reports whether the title was recognized as a canonical kind.
func (r Resolution) Matched() bool {
	return r.Kind != KindDefault
}

// ResolveTitle maps a raw section title to its canonical kind, ignoring case and accents:
// "Decouvrir", "DÉCOUVRIR" and "1. Découvrir le sujet" all resolve to KindDiscovery in French.
// The first kind whose keyword the title contains wins. Unknown titles keep their raw text
// as label and get the default icon.
func ResolveTitle(rawTitle string, locale Locale) Resolution {
	voc := vocabularyOf(locale)
	title := fold(rawTitle)
	for _, kind := range kindOrder {
		t := voc.Kinds[kind]
		if strings.Contains(title, fold(t.Keyword)) {
			return Resolution{
				Kind:        kind,
				Label:       t.Label,
				Icon:        kindIcons[kind],
				Description: t.Description,
			}
		}
	}
	return Resolution{
		Kind:        KindDefault,
		Label:       rawTitle,
		Icon:        IconDefault,
		Description: voc.DefaultDescription,
	}
}
