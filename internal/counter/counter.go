// Package counter measures chapter length for reports.
//
// Two counting methods exist: words (the non-empty classifier tokens) and characters
// (Unicode runes). Both satisfy the Counter interface so a report can carry any
// combination of them.
//
// Usage Example:
//
//	words := counter.NewWordCounter()
//	n := words.Count("It was a dark night.")
//	// n == 5
package counter

import "fmt"

// Counter defines the interface for chapter length measurements.
type Counter interface {
	// Count returns the number of units (words or characters) in the given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the available counting strategies.
type CountingMethod int

const (
	// Words counts non-empty tokens of the space-split body (default)
	Words CountingMethod = iota
	// Characters counts individual runes including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter returns the Counter for method, or an error for an unknown method.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return NewWordCounter(), nil
	case Characters:
		return NewCharCounter(), nil
	default:
		return nil, fmt.Errorf("unknown counting method %d", int(method))
	}
}
