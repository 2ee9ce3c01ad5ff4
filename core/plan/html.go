package plan

import (
	"html/template"
	"io"
	"strings"
	"time"
)

// RevealView tells which parts of a plan have been revealed on screen.
type RevealView interface {
	ContainerVisible() bool
	SectionRevealed(id string) (delay time.Duration, ok bool)
}

type (
	htmlSection struct {
		RenderedSection
		Revealed bool
		DelayMs  int64
	}

	htmlPlan struct {
		Tree     Tree
		Style    template.CSS
		Visible  bool
		Sections []htmlSection
	}
)

var planTmpl = template.Must(template.New("plan").Funcs(template.FuncMap{"display": unescapeKept.Replace}).Parse(`
{{- define "segments" -}}
{{- range . -}}
{{- if .Marker -}}
{{- range .Marker.Kind.Icons }}<i class="icon icon-{{ . }}" aria-hidden="true"></i>{{ end -}}
{{- else -}}
{{ display .Text }}
{{- end -}}
{{- end -}}
{{- end -}}

<section id="{{ .Tree.StyleID }}" class="course-plan{{ if .Tree.Gradient }} course-plan--gradient{{ end }}{{ if .Visible }} is-visible{{ end }}" lang="{{ .Tree.Locale }}"{{ with .Style }} style="{{ . }}"{{ end }}>
<h2 class="course-plan__title">{{ .Tree.Title }}</h2>
{{- with .Tree.Subtitle }}
<p class="course-plan__subtitle">{{ display . }}</p>
{{- end }}
{{- range .Sections }}
<article id="{{ .ID }}" class="course-plan__section course-plan__section--{{ .Kind }}{{ if .Revealed }} is-revealed{{ end }}" aria-label="{{ display .Description }}" style="--reveal-delay: {{ .DelayMs }}ms">
<header class="course-plan__header"><span class="course-plan__badge">{{ .Badge }}</span><i class="icon icon-{{ .Icon }}" aria-hidden="true"></i><h3 class="course-plan__heading">{{ display .Label }}</h3></header>
{{- if .Groups }}
<ol class="course-plan__points">
{{- range .Groups }}
<li>{{ template "segments" .Main }}
{{- if .Subs }}
<ul class="course-plan__subpoints">
{{- range .Subs }}
{{- if .Bullet }}
<li>{{ template "segments" .Segments }}</li>
{{- else }}
<li class="course-plan__continuation">{{ template "segments" .Segments }}</li>
{{- end }}
{{- end }}
</ul>
{{- end }}
</li>
{{- end }}
</ol>
{{- end }}
</article>
{{- end }}
</section>
`))

// RenderHTML writes the HTML fragment of tree. view selects the reveal classes and stagger
// delays; a nil view renders everything as visible with no delay.
// The output only depends on tree and on what view reports.
func RenderHTML(w io.Writer, tree Tree, view RevealView) error {
	data := htmlPlan{
		Tree:     tree,
		Style:    gradientStyle(tree.Gradient),
		Visible:  view == nil || view.ContainerVisible(),
		Sections: make([]htmlSection, 0, len(tree.Sections)),
	}
	for _, s := range tree.Sections {
		hs := htmlSection{RenderedSection: s, Revealed: true}
		if view != nil {
			delay, ok := view.SectionRevealed(s.ID)
			hs.Revealed = data.Visible && ok
			hs.DelayMs = delay.Milliseconds()
		}
		data.Sections = append(data.Sections, hs)
	}
	return planTmpl.Execute(w, data)
}

// gradientStyle returns the CSS custom properties of g. Colors were validated by Gradient.Complete.
func gradientStyle(g *Gradient) template.CSS {
	if g == nil {
		return ""
	}
	props := []struct{ name, value string }{
		{"--plan-light-from", g.LightFrom},
		{"--plan-light-to", g.LightTo},
		{"--plan-dark-from", g.DarkFrom},
		{"--plan-dark-to", g.DarkTo},
		{"--plan-fg-light", g.ForegroundLight},
		{"--plan-fg-dark", g.ForegroundDark},
	}
	var b strings.Builder
	for _, p := range props {
		if p.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.name + ": " + p.value + ";")
	}
	return template.CSS(b.String())
}
