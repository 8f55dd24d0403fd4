package counter

import (
	"log/slog"
	"unicode/utf8"
)

// CharCounter counts the runes of a chapter body, so accented names in translated
// novels count once per letter rather than once per byte.
type CharCounter struct{}

// NewCharCounter creates a new CharCounter instance.
func NewCharCounter() Counter {
	return &CharCounter{}
}

// Count returns the number of UTF-8 characters (runes) in the given text.
func (cc *CharCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	charCount := utf8.RuneCountInString(text)
	slog.Debug("Character count calculated", "bytes", len(text), "characters", charCount)
	return charCount
}

// Name returns the name of this counting method for logging and debugging.
func (cc *CharCounter) Name() string {
	return "characters"
}
