package plan

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Section is one titled section of a course plan.
type Section struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Index   int    `json:"index" yaml:"index"`
}

// Strategy tells how the sections of a Document were found.
type Strategy string

const (
	StrategyEmpty     Strategy = "empty"
	StrategyHeadings  Strategy = "headings"
	StrategyKeywords  Strategy = "keywords"
	StrategySynthetic Strategy = "synthetic"
)

// Document is a parsed course plan: the text preceding the first section, and the sections.
type Document struct {
	Intro    string    `json:"intro" yaml:"intro"`
	Sections []Section `json:"sections" yaml:"sections"`
	Strategy Strategy  `json:"strategy" yaml:"strategy"`
}

var headingRe = regexp.MustCompile(`^#{2,3}[ \t]+(.+?)[ \t#]*$`)

// Split returns the sections of a course plan. See Parse.
func Split(text string, locale Locale) []Section {
	return Parse(text, locale).Sections
}

// Parse normalizes text and splits it into sections.
//
// Level 2 and 3 headings ("## ", "### ") start sections when there are any. Otherwise the
// locale's topic keywords are looked up as whole words, case and accent insensitively, and
// each found keyword starts a section running up to the next one. Text holding none of them
// becomes a single section with a generic title. Blank text has no sections.
func Parse(text string, locale Locale) Document {
	text = Normalize(text)
	if text == "" {
		return Document{Sections: []Section{}, Strategy: StrategyEmpty}
	}
	if doc, ok := splitHeadings(text); ok {
		return doc
	}
	return splitKeywords(text, locale)
}

func newSection(index int, title, content string) Section {
	return Section{
		ID:      "section-" + strconv.Itoa(index),
		Title:   title,
		Content: content,
		Index:   index,
	}
}

func headingTitle(line string) (string, bool) {
	m := headingRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(strings.Trim(m[1], "*_"))
	return title, title != ""
}

func splitHeadings(text string) (Document, bool) {
	var (
		intro    []string
		body     []string
		title    string
		sections []Section
		started  bool
	)
	flush := func() {
		sections = append(sections, newSection(len(sections), title, strings.TrimSpace(strings.Join(body, "\n"))))
		body = body[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if t, ok := headingTitle(line); ok {
			if started {
				flush()
			}
			title = t
			started = true
			continue
		}
		if started {
			body = append(body, line)
		} else {
			intro = append(intro, line)
		}
	}
	if !started {
		return Document{}, false
	}
	flush()

	return Document{
		Intro:    strings.TrimSpace(strings.Join(intro, "\n")),
		Sections: sections,
		Strategy: StrategyHeadings,
	}, true
}

type keywordHit struct {
	start, end int
}

func splitKeywords(text string, locale Locale) Document {
	voc := vocabularyOf(locale)
	ft := newFoldedText(text)

	hits := make([]keywordHit, 0, len(kindOrder))
	for _, kind := range kindOrder {
		if start, end := ft.indexWord(foldWord(voc.Kinds[kind].Keyword), 0); start >= 0 {
			hits = append(hits, keywordHit{start, end})
		}
	}
	if len(hits) == 0 {
		return Document{
			Sections: []Section{newSection(0, voc.SyntheticTitle, text)},
			Strategy: StrategySynthetic,
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	sections := make([]Section, 0, len(hits))
	for i, hit := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		content := strings.TrimSpace(strings.TrimLeft(text[hit.end:end], " \t\n:"))
		sections = append(sections, newSection(i, text[hit.start:hit.end], content))
	}
	return Document{
		Intro:    strings.TrimSpace(text[:hits[0].start]),
		Sections: sections,
		Strategy: StrategyKeywords,
	}
}
