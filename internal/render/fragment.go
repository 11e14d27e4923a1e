// Package render turns annotated token sequences into text, HTML or JSON.
package render

import "strings"

// Kind classifies an output fragment.
type Kind int

const (
	// Raw tokens are emitted unchanged.
	Raw Kind = iota
	// Annotated tokens carry a resolved meaning.
	Annotated
	// Unknown tokens are vocabulary words without a meaning, carrying the
	// unknown marker as their meaning.
	Unknown
)

// Fragment is one token of the original text with its annotation.
type Fragment struct {
	Token   string
	Kind    Kind
	Meaning string
}

// Renderer turns an ordered fragment sequence into output text.
type Renderer interface {
	Render(frags []Fragment) string
}

// Plain concatenates fragment tokens, dropping all annotations.
func Plain(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Token)
	}
	return b.String()
}
