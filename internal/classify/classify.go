// Package classify labels chapters as WAR, PEACE or UNDECIDED from their vocabulary.
//
// The classifier is a bag-of-words heuristic: each normalized token of a chapter is
// looked up in the war and peace term sets, and a Strategy turns the matches into a
// Label. Two strategies exist:
//
//   - Frequency compares the raw number of matches on each side.
//   - Weighted also folds the token positions of the matches into a spread and
//     compares spread per match when both sides matched.
//
// A run picks one strategy and one TieBreak policy and applies them to every chapter.
package classify

import (
	"fmt"
	"log/slog"

	"github.com/chriscorrea/warpeace/internal/terms"
	"github.com/chriscorrea/warpeace/internal/text"
)

// Side holds the matches of one term set against a chapter.
type Side struct {
	Count     int   `json:"count" yaml:"count"`
	Positions []int `json:"-" yaml:"-"`
	// Spread is the folded match positions; nil when the side has no matches or the
	// strategy does not compute it.
	Spread *int `json:"spread,omitempty" yaml:"spread,omitempty"`
}

// Matched reports whether at least one token matched the side's term set.
func (s Side) Matched() bool {
	return s.Count > 0
}

// Result is the outcome of classifying one chapter.
type Result struct {
	Label Label
	War   Side
	Peace Side
}

// Strategy turns a chapter's tokens into a Result. Implementations are pure and safe
// for concurrent use.
type Strategy interface {
	// Name identifies the strategy in configuration and reports.
	Name() string
	// Classify scores normalized tokens against both term sets.
	Classify(tokens []string, war, peace *terms.Set) Result
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string, mode SpreadMode) (Strategy, error) {
	switch name {
	case "", FrequencyName:
		return Frequency{}, nil
	case WeightedName:
		return Weighted{Mode: mode}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want %q or %q)", name, FrequencyName, WeightedName)
	}
}

// match collects the count and positions of tokens found in set.
func match(tokens []string, set *terms.Set) Side {
	var side Side
	for i, token := range tokens {
		if token == "" {
			continue
		}
		if set.Contains(token) {
			side.Count++
			side.Positions = append(side.Positions, i)
		}
	}
	return side
}

// Classifier applies one strategy and tie-break policy to every chapter of a run.
type Classifier struct {
	strategy Strategy
	tieBreak TieBreak
	stemmer  text.Stemmer
	war      *terms.Set
	peace    *terms.Set
}

// NewClassifier binds a strategy to the two term sets. The stemmer must be the one
// the term sets were parsed with.
func NewClassifier(strategy Strategy, tieBreak TieBreak, stemmer text.Stemmer, war, peace *terms.Set) *Classifier {
	if strategy == nil {
		strategy = Frequency{}
	}
	return &Classifier{
		strategy: strategy,
		tieBreak: tieBreak,
		stemmer:  stemmer,
		war:      war,
		peace:    peace,
	}
}

// Strategy returns the active strategy.
func (c *Classifier) Strategy() Strategy {
	return c.strategy
}

// Tokens classifies already-normalized tokens.
func (c *Classifier) Tokens(tokens []string) Result {
	result := c.strategy.Classify(tokens, c.war, c.peace)
	result.Label = c.tieBreak.apply(result.Label)
	return result
}

// Chapter tokenizes a chapter body and classifies it.
func (c *Classifier) Chapter(body string) Result {
	tokens := c.stemmer.StemAll(text.Tokenize(body))
	result := c.Tokens(tokens)

	slog.Debug("Chapter classified",
		"strategy", c.strategy.Name(),
		"tokens", len(tokens),
		"war", result.War.Count,
		"peace", result.Peace.Count,
		"label", result.Label)
	return result
}
