package classify

import (
	"fmt"

	"github.com/chriscorrea/warpeace/internal/terms"
)

// WeightedName is the configuration name of the Weighted strategy.
const WeightedName = "weighted"

// SpreadMode selects how match positions are folded into a single spread.
type SpreadMode int

const (
	// Alternating folds positions left to right with acc = next - acc, seeded with
	// the first position. Positions 2, 5, 9 fold to 9 - (5 - 2) = 6.
	Alternating SpreadMode = iota
	// Span is the distance between the first and last match. Positions 2, 5, 9
	// give 7.
	Span
)

// String returns the configuration name of the mode.
func (m SpreadMode) String() string {
	switch m {
	case Alternating:
		return "alternating"
	case Span:
		return "span"
	default:
		return "unknown"
	}
}

// ParseSpreadMode maps a configuration name to a SpreadMode.
func ParseSpreadMode(name string) (SpreadMode, error) {
	switch name {
	case "", "alternating":
		return Alternating, nil
	case "span":
		return Span, nil
	default:
		return Alternating, fmt.Errorf("unknown spread mode %q (want %q or %q)", name, "alternating", "span")
	}
}

// Fold reduces ascending match positions to a spread. ok is false for no positions.
func (m SpreadMode) Fold(positions []int) (spread int, ok bool) {
	if len(positions) == 0 {
		return 0, false
	}

	if m == Span {
		return positions[len(positions)-1] - positions[0], true
	}

	acc := positions[0]
	for _, next := range positions[1:] {
		acc = next - acc
	}
	return acc, true
}

// Weighted labels a chapter by match presence first and, when both sides match, by
// comparing spread per match with integer division. Equal ratios favor WAR.
type Weighted struct {
	Mode SpreadMode
}

// Name implements Strategy.
func (Weighted) Name() string {
	return WeightedName
}

// Classify implements Strategy.
func (w Weighted) Classify(tokens []string, war, peace *terms.Set) Result {
	result := Result{War: match(tokens, war), Peace: match(tokens, peace)}
	result.War.Spread = w.spread(result.War.Positions)
	result.Peace.Spread = w.spread(result.Peace.Positions)

	switch {
	case !result.War.Matched() && !result.Peace.Matched():
		result.Label = Undecided
	case !result.Peace.Matched():
		result.Label = War
	case !result.War.Matched():
		result.Label = Peace
	default:
		warRatio := *result.War.Spread / result.War.Count
		peaceRatio := *result.Peace.Spread / result.Peace.Count
		if peaceRatio > warRatio {
			result.Label = Peace
		} else {
			result.Label = War
		}
	}
	return result
}

func (w Weighted) spread(positions []int) *int {
	spread, ok := w.Mode.Fold(positions)
	if !ok {
		return nil
	}
	return &spread
}
