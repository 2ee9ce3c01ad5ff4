package plan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	colorRe         = regexp.MustCompile(`^(?:#[0-9a-fA-F]{3,8}|(?:rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\)|[a-zA-Z]{3,30})$`)
	headingPrefixRe = regexp.MustCompile(`^#+[ \t]+`)
)

// Gradient is the optional color treatment of a course plan. It never affects parsing.
type Gradient struct {
	LightFrom       string `json:"light_from,omitempty" yaml:"light_from,omitempty"`
	LightTo         string `json:"light_to,omitempty" yaml:"light_to,omitempty"`
	DarkFrom        string `json:"dark_from,omitempty" yaml:"dark_from,omitempty"`
	DarkTo          string `json:"dark_to,omitempty" yaml:"dark_to,omitempty"`
	ForegroundLight string `json:"foreground_light,omitempty" yaml:"foreground_light,omitempty"`
	ForegroundDark  string `json:"foreground_dark,omitempty" yaml:"foreground_dark,omitempty"`
}

// IsColor reports whether s is a hex, rgb(a), hsl(a) or named CSS color.
func IsColor(s string) bool {
	return colorRe.MatchString(strings.TrimSpace(s))
}

// Complete reports whether all four endpoints are set to valid colors.
func (g Gradient) Complete() bool {
	for _, c := range []string{g.LightFrom, g.LightTo, g.DarkFrom, g.DarkTo} {
		if !IsColor(c) {
			return false
		}
	}
	return true
}

// clean drops invalid foreground colors and trims the others.
func (g Gradient) clean() Gradient {
	fg := func(c string) string {
		if c = strings.TrimSpace(c); IsColor(c) {
			return c
		}
		return ""
	}
	return Gradient{
		LightFrom:       strings.TrimSpace(g.LightFrom),
		LightTo:         strings.TrimSpace(g.LightTo),
		DarkFrom:        strings.TrimSpace(g.DarkFrom),
		DarkTo:          strings.TrimSpace(g.DarkTo),
		ForegroundLight: fg(g.ForegroundLight),
		ForegroundDark:  fg(g.ForegroundDark),
	}
}

type (
	Input struct {
		PlanMD   string
		Locale   Locale
		CourseID string
		Gradient Gradient
	}

	// Badge is either a section number or a symbol.
	Badge struct {
		Number int    `json:"number,omitempty" yaml:"number,omitempty"`
		Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	}

	RenderedSubLine struct {
		Bullet   bool      `json:"bullet" yaml:"bullet"`
		Segments []Segment `json:"segments" yaml:"segments"`
	}

	RenderedGroup struct {
		Main []Segment         `json:"main" yaml:"main"`
		Subs []RenderedSubLine `json:"subs" yaml:"subs"`
	}

	RenderedSection struct {
		ID           string          `json:"id" yaml:"id"`
		Index        int             `json:"index" yaml:"index"`
		RawTitle     string          `json:"raw_title" yaml:"raw_title"`
		Kind         Kind            `json:"kind" yaml:"kind"`
		Label        string          `json:"label" yaml:"label"`
		Icon         Icon            `json:"icon" yaml:"icon"`
		Description  string          `json:"aria_label" yaml:"aria_label"`
		HeadingLevel int             `json:"heading_level" yaml:"heading_level"`
		Badge        Badge           `json:"badge" yaml:"badge"`
		Groups       []RenderedGroup `json:"groups" yaml:"groups"`
	}

	// Tree is the rendered course plan, ready to be bound to a UI.
	Tree struct {
		Title      string            `json:"title" yaml:"title"`
		TitleLevel int               `json:"title_level" yaml:"title_level"`
		Subtitle   string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
		Locale     Locale            `json:"locale" yaml:"locale"`
		CourseID   string            `json:"course_id,omitempty" yaml:"course_id,omitempty"`
		StyleID    string            `json:"style_id" yaml:"style_id"`
		Gradient   *Gradient         `json:"gradient,omitempty" yaml:"gradient,omitempty"`
		Strategy   Strategy          `json:"strategy" yaml:"strategy"`
		Sections   []RenderedSection `json:"sections" yaml:"sections"`
	}
)

func (b Badge) String() string {
	if b.Number > 0 {
		return strconv.Itoa(b.Number)
	}
	return b.Symbol
}

const (
	titleLevel   = 2
	sectionLevel = 3
)

// Render parses and annotates a course plan. It is pure: the same Input always gives the same Tree.
func Render(in Input) Tree {
	locale := in.Locale.valid()
	doc := Parse(in.PlanMD, locale)

	tree := Tree{
		Title:      Title(locale),
		TitleLevel: titleLevel,
		Subtitle:   subtitle(doc.Intro),
		Locale:     locale,
		CourseID:   in.CourseID,
		StyleID:    StyleID(in.CourseID),
		Strategy:   doc.Strategy,
		Sections:   make([]RenderedSection, 0, len(doc.Sections)),
	}
	if in.Gradient.Complete() {
		g := in.Gradient.clean()
		tree.Gradient = &g
	}

	for _, s := range doc.Sections {
		tree.Sections = append(tree.Sections, renderSection(s, locale))
	}
	return tree
}

func renderSection(s Section, locale Locale) RenderedSection {
	res := ResolveTitle(s.Title, locale)
	badge := Badge{Number: res.Kind.Number()}
	if badge.Number == 0 {
		badge.Symbol = Symbol
	}

	groups := Group(s.Content)
	rendered := make([]RenderedGroup, 0, len(groups))
	for _, g := range groups {
		rg := RenderedGroup{
			Main: Annotate(g.MainLine),
			Subs: make([]RenderedSubLine, 0, len(g.SubLines)),
		}
		for _, line := range g.SubLines {
			sub := ClassifySubLine(line)
			rg.Subs = append(rg.Subs, RenderedSubLine{Bullet: sub.Bullet, Segments: Annotate(sub.Text)})
		}
		rendered = append(rendered, rg)
	}

	return RenderedSection{
		ID:           s.ID,
		Index:        s.Index,
		RawTitle:     s.Title,
		Kind:         res.Kind,
		Label:        res.Label,
		Icon:         res.Icon,
		Description:  res.Description,
		HeadingLevel: sectionLevel,
		Badge:        badge,
		Groups:       rendered,
	}
}

// subtitle is the first non-empty line of the intro, without heading marks.
func subtitle(intro string) string {
	for _, line := range strings.Split(intro, "\n") {
		if line = strings.TrimSpace(headingPrefixRe.ReplaceAllLiteralString(strings.TrimSpace(line), "")); line != "" {
			return line
		}
	}
	return ""
}

// StyleID derives the element id used to scope the presentation of a course's plan.
func StyleID(courseID string) string {
	var b strings.Builder
	b.WriteString("course-plan")
	if courseID = strings.TrimSpace(courseID); courseID == "" {
		return b.String()
	}
	b.WriteByte('-')
	for _, r := range courseID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
