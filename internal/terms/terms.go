// Package terms loads the curated vocabulary lists that describe each theme.
//
// A term file is newline-delimited plain text, one term per line. Blank lines are
// ignored and every term is normalized exactly like a chapter token, so matching
// is case-insensitive and punctuation-insensitive.
package terms

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/chriscorrea/warpeace/internal/text"
)

// Default term file locations, relative to the working directory.
const (
	DefaultWarPath   = "war_terms.txt"
	DefaultPeacePath = "peace_terms.txt"
)

// Set is an immutable collection of normalized terms.
type Set struct {
	name  string
	terms map[string]struct{}
}

// Option configures how term lines are normalized.
type Option func(*options)

type options struct {
	stemmer text.Stemmer
}

// WithStemmer applies the stemmer to every term after normalization. Chapter tokens
// must be stemmed with the same stemmer or nothing will match.
func WithStemmer(s text.Stemmer) Option {
	return func(o *options) {
		o.stemmer = s
	}
}

// Parse builds a named Set from raw term lines.
func Parse(name string, lines []string, opts ...Option) *Set {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	set := &Set{name: name, terms: make(map[string]struct{})}
	for _, line := range text.CleanLines(lines) {
		term := o.stemmer.Stem(text.NormalizeToken(line))
		if term == "" {
			slog.Debug("Dropping term that normalizes to empty", "list", name, "line", line)
			continue
		}
		set.terms[term] = struct{}{}
	}
	return set
}

// Load reads and parses the term file at path. The set is named after the path.
// A missing or unreadable file is an error; an empty file yields an empty set.
func Load(path string, opts ...Option) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read term file %q: %w", path, err)
	}

	set := Parse(path, text.SplitLines(string(data)), opts...)
	if set.Len() == 0 {
		slog.Warn("Term list is empty and will never match", "path", path)
	}
	slog.Debug("Term list loaded", "path", path, "terms", set.Len())
	return set, nil
}

// Name returns the label the set was created with.
func (s *Set) Name() string {
	return s.name
}

// Contains reports whether the normalized token is in the set. A nil set contains nothing.
func (s *Set) Contains(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.terms[token]
	return ok
}

// Len returns the number of distinct terms.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// Terms returns a sorted copy of the terms.
func (s *Set) Terms() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, 0, len(s.terms))
	for term := range s.terms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
