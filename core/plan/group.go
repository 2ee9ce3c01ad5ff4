package plan

import (
	"regexp"
	"strings"
)

// PointGroup is a main bullet ("a) ...") and the lines that follow it.
type PointGroup struct {
	MainLine string   `json:"main_line" yaml:"main_line"`
	SubLines []string `json:"sub_lines" yaml:"sub_lines"`
}

// SubLine is a classified sub line of a PointGroup.
type SubLine struct {
	Text   string
	Bullet bool
}

var (
	mainLineRe = regexp.MustCompile(`^[a-z]\)\s+`)
	bulletRe   = regexp.MustCompile(`^[-–—•]\s*`)
)

// IsMainLine reports whether a trimmed line starts with a letter marker like "a) ".
func IsMainLine(line string) bool {
	return mainLineRe.MatchString(line)
}

// Group groups the non-blank lines of content under their main lines.
// Lines before the first main line form a first group led by the first of them.
func Group(content string) []PointGroup {
	var groups []PointGroup
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if len(groups) == 0 || IsMainLine(line) {
			groups = append(groups, PointGroup{MainLine: line, SubLines: []string{}})
			continue
		}
		last := &groups[len(groups)-1]
		last.SubLines = append(last.SubLines, line)
	}
	return groups
}

// ClassifySubLine strips the dash marker of a bulleted sub line.
// Lines without one are continuation text.
func ClassifySubLine(line string) SubLine {
	loc := bulletRe.FindStringIndex(line)
	if loc == nil || loc[1] == len(line) {
		return SubLine{Text: line}
	}
	return SubLine{Text: line[loc[1]:], Bullet: true}
}
