package domain

// Morpheme is one segment of the input text with the analyzer's annotations.
// Segments the analyzer did not annotate carry only Surface.
type Morpheme struct {
	Surface  string
	BaseForm string
	POS      []string
	Reading  string
}

// Surfaces returns the surface of every morpheme, in order.
func Surfaces(ms []Morpheme) []string {
	if len(ms) == 0 {
		return nil
	}
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Surface
	}
	return out
}

// SurfaceMorphemes wraps plain tokens as unannotated morphemes.
func SurfaceMorphemes(tokens []string) []Morpheme {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]Morpheme, len(tokens))
	for i, t := range tokens {
		out[i] = Morpheme{Surface: t}
	}
	return out
}
