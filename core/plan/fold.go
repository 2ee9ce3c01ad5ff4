package plan

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold upper-cases s and drops its diacritics: "Découvrir" -> "DECOUVRIR".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Upper(language.Und).String(stripped)
}

func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToUpper(r)
	}
	f, size := utf8.DecodeRuneInString(fold(string(r)))
	if size == 0 || f == utf8.RuneError {
		return r
	}
	return f
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// foldedText is a rune-wise folded copy of a string that remembers the byte offset of each rune,
// so that matches found on the folded runes map back onto the original text.
type foldedText struct {
	runes   []rune
	offsets []int // offsets[i] is the byte offset of runes[i]; offsets[len(runes)] == len(text)
}

func newFoldedText(s string) foldedText {
	ft := foldedText{
		runes:   make([]rune, 0, len(s)),
		offsets: make([]int, 0, len(s)+1),
	}
	for i, r := range s {
		ft.runes = append(ft.runes, foldRune(r))
		ft.offsets = append(ft.offsets, i)
	}
	ft.offsets = append(ft.offsets, len(s))
	return ft
}

// indexWord returns the byte span of the first whole-word occurrence of the folded word in ft,
// starting at rune index from. start is -1 when there is none.
func (ft foldedText) indexWord(word []rune, from int) (start, end int) {
	n := len(word)
	if n == 0 {
		return -1, -1
	}
	for i := from; i+n <= len(ft.runes); i++ {
		if !ft.hasAt(word, i) {
			continue
		}
		if i > 0 && isWordRune(ft.runes[i-1]) {
			continue
		}
		if i+n < len(ft.runes) && isWordRune(ft.runes[i+n]) {
			continue
		}
		return ft.offsets[i], ft.offsets[i+n]
	}
	return -1, -1
}

func (ft foldedText) hasAt(word []rune, i int) bool {
	for j, r := range word {
		if ft.runes[i+j] != r {
			return false
		}
	}
	return true
}

func foldWord(s string) []rune {
	word := make([]rune, 0, len(s))
	for _, r := range s {
		word = append(word, foldRune(r))
	}
	return word
}
