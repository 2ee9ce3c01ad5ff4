package plan

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "blank", raw: " \n\t\r\n ", want: ""},
		{name: "paragraph", raw: "<p>Hello&nbsp;world</p>", want: "Hello world"},
		{name: "line breaks", raw: "Line 1<br>Line 2<br/>Line 3<BR />Line 4", want: "Line 1\nLine 2\nLine 3\nLine 4"},
		{name: "list items", raw: "<ul><li>One</li><li class=\"x\">Two</li></ul>", want: "One\nTwo"},
		{name: "list item markers", raw: "<ul><li>a) Point one</li><li>b) Point two</li></ul>", want: "a) Point one\nb) Point two"},
		{name: "accents", raw: "D&eacute;couvrir &amp; apprendre", want: "Découvrir & apprendre"},
		{name: "quotes", raw: "&quot;Titre&quot; d&#39;expert", want: `"Titre" d'expert`},
		{name: "encoded markup kept", raw: "&lt;br&gt;x", want: "&lt;br>x"},
		{name: "encoded tag kept", raw: "Use the &lt;div&gt; tag", want: "Use the &lt;div> tag"},
		{name: "encoded comparison", raw: "1 &lt; 2 &amp;&amp; 3 &gt; 2", want: "1 < 2 && 3 > 2"},
		{name: "double encoded kept", raw: "Tom &amp;amp; Jerry", want: "Tom &amp;amp; Jerry"},
		{name: "unclosed tag", raw: "<b&gt; x", want: "<b&gt; x"},
		{name: "nested tag halves", raw: "<<b>b>x", want: "x"},
		{name: "comparison kept", raw: "a < b and c > d", want: "a < b and c > d"},
		{name: "unknown entity kept", raw: "caf&eacute; &hellip;", want: "café &hellip;"},
		{name: "crlf and blanks", raw: "  \n\n\n\nText   \nMore\r\n", want: "Text\nMore"},
		{name: "blank lines collapsed", raw: "a\n\n\n\n\nb", want: "a\n\nb"},
		{name: "heading kept", raw: "<p>### DÉCOUVRIR</p><p>a) Point</p>", want: "### DÉCOUVRIR\na) Point"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize(Normalize()) = %q, want %q", again, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	tokens := []string{
		"<p>", "</p>", "<br>", "<br/>", "<li>", "</li>", "<ul>", "<div class='a'>",
		"&lt;", "&gt;", "&amp;", "&nbsp;", "&eacute;", "&#39;",
		"&", ";", "<", ">", "/", "br", "li", "lt", "gt", "amp",
		"a", "é", "Quiz", " ", "\t", "\n", "\r", "#", "-",
	}
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		var b strings.Builder
		for n := rnd.Intn(24); n > 0; n-- {
			b.WriteString(tokens[rnd.Intn(len(tokens))])
		}
		raw := b.String()
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize(%q) not idempotent: %q then %q", raw, once, twice)
		}
	}
}
