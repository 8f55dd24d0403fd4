package text

import (
	"log/slog"

	"github.com/kljensen/snowball"
)

// Stemmer reduces normalized tokens to their Snowball stem. The zero value is a
// pass-through stemmer, so callers can hold one unconditionally.
type Stemmer struct {
	enabled  bool
	language string
}

// NewStemmer returns a stemmer for English, or a pass-through stemmer when disabled.
func NewStemmer(enabled bool) Stemmer {
	return Stemmer{enabled: enabled, language: "english"}
}

// Enabled reports whether the stemmer changes tokens.
func (s Stemmer) Enabled() bool {
	return s.enabled
}

// Stem returns the stem of an already normalized token. Empty tokens stay empty and
// a token that snowball rejects is returned unchanged.
func (s Stemmer) Stem(token string) string {
	if !s.enabled || token == "" {
		return token
	}

	// stopwords are stemmed too; term lists may legitimately contain them
	stemmed, err := snowball.Stem(token, s.language, true)
	if err != nil {
		slog.Debug("Stemming failed, keeping token", "token", token, "error", err)
		return token
	}
	return stemmed
}

// StemAll stems every token in place and returns the same slice.
func (s Stemmer) StemAll(tokens []string) []string {
	if !s.enabled {
		return tokens
	}
	for i, token := range tokens {
		tokens[i] = s.Stem(token)
	}
	return tokens
}
