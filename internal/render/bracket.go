package render

import "strings"

// Braces inside a meaning would break the token{meaning} framing.
var braceReplacer = strings.NewReplacer("{", "(", "}", ")")

// Bracket renders annotated tokens as token{meaning} with no separator.
// Braces in meanings are rendered as parentheses.
type Bracket struct{}

// Render implements Renderer.
func (Bracket) Render(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Token)
		if f.Kind == Raw {
			continue
		}
		b.WriteByte('{')
		b.WriteString(braceReplacer.Replace(f.Meaning))
		b.WriteByte('}')
	}
	return b.String()
}
