package plan

import (
	"regexp"
	"strings"
)

var (
	breakTagRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndTagRe  = regexp.MustCompile(`(?i)</(?:p|div|ul|ol|h[1-6]|blockquote|tr)\s*>`)
	listItemTagRe  = regexp.MustCompile(`(?i)<li(?:\s[^<>]*)?>`)
	anyTagRe       = regexp.MustCompile(`<[a-zA-Z/!][^<>]*>`)
	trailingBlanks = regexp.MustCompile(`[ \t]+\n`)
	blankLinesRe   = regexp.MustCompile(`\n{3,}`)

	entities = map[string]string{
		"&nbsp;":   " ",
		"&amp;":    "&",
		"&lt;":     "<",
		"&gt;":     ">",
		"&quot;":   `"`,
		"&#39;":    "'",
		"&#039;":   "'",
		"&apos;":   "'",
		"&eacute;": "é",
		"&Eacute;": "É",
		"&egrave;": "è",
		"&Egrave;": "È",
		"&agrave;": "à",
		"&Agrave;": "À",
		"&acirc;":  "â",
		"&Acirc;":  "Â",
		"&ccedil;": "ç",
		"&Ccedil;": "Ç",
		"&ucirc;":  "û",
		"&Ucirc;":  "Û",
	}

	// maxEntityLen bounds the lookahead of decodeEntities.
	maxEntityLen = len("&eacute;")

	// unescapeKept reverses the entities decodeEntities leaves encoded. For display only.
	unescapeKept = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
)

// Normalize turns raw CMS text into plain text: structural tags become line breaks,
// other tags are dropped and known entities are decoded.
//
// Entities are decoded once, after the tags are gone. An entity whose decoding would form
// markup or another entity ("&lt;div&gt;", "&amp;amp;") stays encoded so that
// Normalize(Normalize(s)) == Normalize(s) without dropping any text.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = stripTags(s)
	s = decodeEntities(s)
	s = trailingBlanks.ReplaceAllLiteralString(s, "\n")
	s = blankLinesRe.ReplaceAllLiteralString(s, "\n\n")
	return strings.TrimSpace(s)
}

// stripTags repeats until no tag is left: removing one can join the halves of another ("<<b>b>").
func stripTags(s string) string {
	for {
		next := breakTagRe.ReplaceAllLiteralString(s, "\n")
		next = blockEndTagRe.ReplaceAllLiteralString(next, "\n")
		next = listItemTagRe.ReplaceAllLiteralString(next, "\n")
		next = anyTagRe.ReplaceAllLiteralString(next, "")
		if next == s {
			return s
		}
		s = next
	}
}

func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		name, decoded := entityAt(s[i:])
		switch {
		case name == "":
			b.WriteByte('&')
			i++
		case keepEncoded(b.String(), name, s[i+len(name):]):
			b.WriteString(name)
			i += len(name)
		default:
			b.WriteString(decoded)
			i += len(name)
		}
	}
	return b.String()
}

// entityAt returns the known entity s starts with, if any.
func entityAt(s string) (name, decoded string) {
	end := strings.IndexByte(s, ';')
	if end < 0 || end >= maxEntityLen {
		return "", ""
	}
	if d, ok := entities[s[:end+1]]; ok {
		return s[:end+1], d
	}
	return "", ""
}

// keepEncoded reports whether decoding entity between out and rest would create text that
// a later Normalize would rewrite.
func keepEncoded(out, entity, rest string) bool {
	switch entity {
	case "&lt;":
		return rest != "" && isTagStart(rest[0])
	case "&gt;":
		i := strings.LastIndexAny(out, "<>")
		return i >= 0 && out[i] == '<' && i+1 < len(out) && isTagStart(out[i+1])
	case "&amp;":
		name, _ := entityAt("&" + rest)
		return name != ""
	}
	return false
}

func isTagStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '/' || c == '!'
}
