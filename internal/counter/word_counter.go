package counter

import (
	"log/slog"

	"github.com/chriscorrea/warpeace/internal/text"
)

// WordCounter counts the tokens of a chapter that the classifier can match.
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of non-empty tokens text.Tokenize produces for text.
// Pieces that are pure punctuation or empty runs between spaces are not words.
func (wc *WordCounter) Count(body string) int {
	words := 0
	for _, token := range text.Tokenize(body) {
		if token != "" {
			words++
		}
	}
	slog.Debug("Word count calculated", "bytes", len(body), "words", words)
	return words
}

// Name returns the name of this counting method for logging and debugging.
func (wc *WordCounter) Name() string {
	return "words"
}
