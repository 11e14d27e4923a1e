package render

import (
	"html"
	"strings"
)

const (
	classGloss   = "gloss"
	classUnknown = "gloss gloss-unknown"
)

// Markup renders annotated tokens as <span class="gloss" data-meaning="…">.
// Every token and meaning is HTML-escaped.
type Markup struct{}

// Render implements Renderer.
func (Markup) Render(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		if f.Kind == Raw {
			b.WriteString(html.EscapeString(f.Token))
			continue
		}
		class := classGloss
		if f.Kind == Unknown {
			class = classUnknown
		}
		b.WriteString(`<span class="`)
		b.WriteString(class)
		b.WriteString(`" data-meaning="`)
		b.WriteString(html.EscapeString(f.Meaning))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(f.Token))
		b.WriteString(`</span>`)
	}
	return b.String()
}
