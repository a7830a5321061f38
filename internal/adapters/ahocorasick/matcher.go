// Package ahocorasick provides multi-pattern string matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library for O(n + m + z) matching.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher finds which rule trigger keywords occur in a file.
// Build() compiles an automaton; Match() returns matching keywords.
// A Matcher satisfies lint.Prefilter.
type Matcher struct {
	automaton aho.AhoCorasick
	keywords  []string
	built     bool
}

// NewMatcher returns a Matcher built from keywords.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{}
	m.Build(keywords)
	return m
}

// Build compiles the Aho-Corasick automaton from the given keywords.
func (m *Matcher) Build(keywords []string) {
	m.keywords = make([]string, len(keywords))
	copy(m.keywords, keywords)

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	m.automaton = builder.Build(m.keywords)
	m.built = true
}

// Match returns every keyword found in content, each once, in order of
// first occurrence. Overlapping keywords ("use" inside "useState") are all
// reported.
func (m *Matcher) Match(content string) []string {
	if !m.built || len(m.keywords) == 0 || content == "" {
		return nil
	}

	seen := make(map[int]bool, len(m.keywords))
	var result []string
	iter := m.automaton.IterOverlappingByte([]byte(content))
	for next := iter.Next(); next != nil; next = iter.Next() {
		idx := next.Pattern()
		if !seen[idx] {
			seen[idx] = true
			result = append(result, m.keywords[idx])
		}
		if len(result) == len(m.keywords) {
			break
		}
	}
	return result
}

// Keywords returns the keywords the automaton was built from.
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}
