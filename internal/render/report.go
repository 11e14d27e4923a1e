package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/heartmarshall/jpgloss/internal/domain"
)

// Report is the machine-readable output of one annotation run. It keeps the
// full meaning lists that inline annotation discards.
type Report struct {
	Annotated  string        `json:"annotated"`
	Tokens     []ReportToken `json:"tokens"`
	Vocabulary []ReportEntry `json:"vocabulary"`
}

// ReportToken is one segment of the input with the analyzer's annotations.
type ReportToken struct {
	Surface  string   `json:"surface"`
	BaseForm string   `json:"base_form,omitempty"`
	POS      []string `json:"pos,omitempty"`
	Reading  string   `json:"reading,omitempty"`
}

// ReportEntry describes one vocabulary word.
type ReportEntry struct {
	Word          string   `json:"word"`
	Status        string   `json:"status"`
	Reading       string   `json:"reading,omitempty"`
	Meanings      []string `json:"meanings,omitempty"`
	PartsOfSpeech []string `json:"parts_of_speech,omitempty"`
	Common        bool     `json:"common,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// NewReport builds a report. Tokens keep the input order; vocabulary
// entries are sorted by word.
func NewReport(annotated string, morphemes []domain.Morpheme, g domain.Glossary) Report {
	r := Report{
		Annotated:  annotated,
		Tokens:     make([]ReportToken, 0, len(morphemes)),
		Vocabulary: make([]ReportEntry, 0, g.Len()),
	}
	for _, m := range morphemes {
		r.Tokens = append(r.Tokens, ReportToken{
			Surface:  m.Surface,
			BaseForm: m.BaseForm,
			POS:      m.POS,
			Reading:  m.Reading,
		})
	}
	for _, w := range g.Words() {
		l, _ := g.Get(w)
		e := ReportEntry{Word: w, Status: l.Status.String()}
		switch l.Status {
		case domain.StatusFound:
			e.Reading = l.Entry.Reading
			e.Meanings = l.Entry.Meanings
			e.PartsOfSpeech = l.Entry.PartsOfSpeech
			e.Common = l.Entry.Common
		case domain.StatusFailed:
			if l.Err != nil {
				e.Error = l.Err.Error()
			}
		}
		r.Vocabulary = append(r.Vocabulary, e)
	}
	return r
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("render: json: %w", err)
	}
	return nil
}
