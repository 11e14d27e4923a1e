// Package glossary serves dictionary lookups from a local YAML file.
//
// The file maps words to entries. An entry is either a full mapping
//
//	天気:
//	  reading: てんき
//	  meanings: [weather, the elements]
//	  parts_of_speech: [Noun]
//
// or a shorthand scalar or list of meanings:
//
//	今日: today
//	曖昧: [vague, ambiguous]
package glossary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/jpgloss/internal/provider"
)

// Entry is one glossary record.
type Entry struct {
	Reading       string   `yaml:"reading"`
	Meanings      []string `yaml:"meanings"`
	PartsOfSpeech []string `yaml:"parts_of_speech"`
	Common        bool     `yaml:"common"`
}

// UnmarshalYAML accepts the full mapping form as well as a bare meaning or a
// list of meanings.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Meanings = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		return node.Decode(&e.Meanings)
	}
	type plain Entry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Provider looks words up in an in-memory glossary. Safe for concurrent use.
type Provider struct {
	entries map[string]Entry
}

// New creates a Provider over the given entries.
func New(entries map[string]Entry) *Provider {
	cp := make(map[string]Entry, len(entries))
	for w, e := range entries {
		cp[strings.TrimSpace(w)] = e
	}
	return &Provider{entries: cp}
}

// Load reads a glossary file.
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glossary: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glossary: %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes glossary YAML.
func Parse(data []byte) (*Provider, error) {
	var entries map[string]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return New(entries), nil
}

// Len returns the number of glossary words.
func (p *Provider) Len() int {
	return len(p.entries)
}

// FetchEntry returns the glossary entry for word.
// Returns nil, nil if the word is absent or has no meanings.
func (p *Provider) FetchEntry(_ context.Context, word string) (*provider.DictionaryResult, error) {
	e, ok := p.entries[word]
	if !ok {
		return nil, nil
	}
	result := &provider.DictionaryResult{
		Word:    word,
		Reading: e.Reading,
		Common:  e.Common,
		Senses: []provider.SenseResult{{
			Meanings:      append([]string(nil), e.Meanings...),
			PartsOfSpeech: append([]string(nil), e.PartsOfSpeech...),
		}},
	}
	if !result.HasMeaning() {
		return nil, nil
	}
	return result, nil
}
