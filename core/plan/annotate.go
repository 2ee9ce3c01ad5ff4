package plan

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// MarkerKind identifies an inline pattern.
type MarkerKind string

const (
	MarkerVideo     MarkerKind = "video"
	MarkerDownload  MarkerKind = "download"
	MarkerTrueFalse MarkerKind = "true-false"
	MarkerYouTube   MarkerKind = "youtube"
	MarkerQuiz      MarkerKind = "quiz"
	MarkerDuration  MarkerKind = "duration"
)

var markerIcons = map[MarkerKind][]Icon{
	MarkerVideo:     {IconVideo},
	MarkerDownload:  {IconDownload},
	MarkerTrueFalse: {IconCheck, IconCross},
	MarkerYouTube:   {IconYouTube},
	MarkerQuiz:      {IconQuiz},
	MarkerDuration:  {IconClock},
}

// Icons returns the inline icons of the marker, in display order.
func (k MarkerKind) Icons() []Icon {
	return markerIcons[k]
}

type (
	// Span is a half-open byte range [Start, End) of a line.
	Span struct {
		Start int
		End   int
	}

	// Marker is a zero-width icon marker. Position is the byte offset of the line it is inserted at.
	Marker struct {
		Kind      MarkerKind `json:"kind" yaml:"kind"`
		AfterText bool       `json:"after_text" yaml:"after_text"`
		Position  int        `json:"position" yaml:"position"`
	}

	// Segment is either a piece of text or a Marker.
	Segment struct {
		Text   string  `json:"text,omitempty" yaml:"text,omitempty"`
		Marker *Marker `json:"marker,omitempty" yaml:"marker,omitempty"`
	}

	// Matcher finds the occurrences of one inline pattern.
	Matcher interface {
		Kind() MarkerKind
		// Before reports whether the marker goes before the matched text.
		Before() bool
		// FindNonOverlappingMatches returns the left to right, non-overlapping matches
		// lying within the free span of line.
		FindNonOverlappingMatches(line string, free Span) []Span
	}
)

func (s Segment) IsMarker() bool { return s.Marker != nil }

type regexpMatcher struct {
	kind        MarkerKind
	re          *regexp.Regexp
	wholeWord   bool
	placeBefore bool
}

var _ Matcher = (*regexpMatcher)(nil)

func (m *regexpMatcher) Kind() MarkerKind { return m.kind }
func (m *regexpMatcher) Before() bool     { return m.placeBefore }

func (m *regexpMatcher) FindNonOverlappingMatches(line string, free Span) []Span {
	var spans []Span
	for _, loc := range m.re.FindAllStringIndex(line[free.Start:free.End], -1) {
		span := Span{Start: free.Start + loc[0], End: free.Start + loc[1]}
		if m.wholeWord && !wordBounded(line, span) {
			continue
		}
		spans = append(spans, span)
	}
	return spans
}

// wordBounded checks the runes around span in the whole line, not only in the free span.
func wordBounded(line string, span Span) bool {
	if span.Start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(line[:span.Start]); isWordRune(r) {
			return false
		}
	}
	if span.End < len(line) {
		if r, _ := utf8.DecodeRuneInString(line[span.End:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// Matchers is the annotation pipeline, in priority order.
var Matchers = []Matcher{
	&regexpMatcher{kind: MarkerVideo, re: regexp.MustCompile(`(?i)vid[ée]o d['’]expert|expert video|storytelling[\s\x{00A0}]*:[\s\x{00A0}]*vid[ée]o`)},
	&regexpMatcher{kind: MarkerDownload, re: regexp.MustCompile(`(?i)documents?\s+t[ée]l[ée]chargeables?|downloadable\s+documents?`)},
	&regexpMatcher{kind: MarkerTrueFalse, re: regexp.MustCompile(`(?i)vrai/faux|true/false`)},
	&regexpMatcher{kind: MarkerYouTube, re: regexp.MustCompile(`(?i)youtube`)},
	&regexpMatcher{kind: MarkerQuiz, re: regexp.MustCompile(`(?i)quiz(?:zes)?`), wholeWord: true},
	&regexpMatcher{kind: MarkerDuration, re: regexp.MustCompile(`\d+['’]\d+`), placeBefore: true},
}

type claim struct {
	Span
	matcher Matcher
}

// Annotate splits line into text segments and icon markers. See AnnotateWith.
func Annotate(line string) []Segment {
	return AnnotateWith(line, Matchers)
}

// AnnotateWith runs matchers in order over line. Each matcher only looks at the text not claimed
// by the previous ones. Markers never consume text: concatenating the Text of the returned
// segments gives back line.
func AnnotateWith(line string, matchers []Matcher) []Segment {
	var claims []claim
	for _, m := range matchers {
		var found []claim
		for _, free := range freeSpans(len(line), claims) {
			for _, span := range m.FindNonOverlappingMatches(line, free) {
				found = append(found, claim{Span: span, matcher: m})
			}
		}
		claims = append(claims, found...)
		sort.Slice(claims, func(i, j int) bool { return claims[i].Start < claims[j].Start })
	}
	if len(claims) == 0 {
		return []Segment{{Text: line}}
	}

	segments := make([]Segment, 0, 3*len(claims)+1)
	text := func(start, end int) {
		if start < end {
			segments = append(segments, Segment{Text: line[start:end]})
		}
	}
	marker := func(c claim) {
		pos := c.End
		if c.matcher.Before() {
			pos = c.Start
		}
		segments = append(segments, Segment{Marker: &Marker{
			Kind:      c.matcher.Kind(),
			AfterText: !c.matcher.Before(),
			Position:  pos,
		}})
	}

	cursor := 0
	for _, c := range claims {
		text(cursor, c.Start)
		if c.matcher.Before() {
			marker(c)
			text(c.Start, c.End)
		} else {
			text(c.Start, c.End)
			marker(c)
		}
		cursor = c.End
	}
	text(cursor, len(line))
	return segments
}

// freeSpans returns the parts of [0, n) not covered by the sorted claims.
func freeSpans(n int, claims []claim) []Span {
	var spans []Span
	cursor := 0
	for _, c := range claims {
		if c.Start > cursor {
			spans = append(spans, Span{Start: cursor, End: c.Start})
		}
		if c.End > cursor {
			cursor = c.End
		}
	}
	if cursor < n {
		spans = append(spans, Span{Start: cursor, End: n})
	}
	return spans
}

// Text concatenates the text segments.
func Text(segments []Segment) string {
	var n int
	for _, s := range segments {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range segments {
		b = append(b, s.Text...)
	}
	return string(b)
}
