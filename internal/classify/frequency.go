package classify

import "github.com/chriscorrea/warpeace/internal/terms"

// FrequencyName is the configuration name of the Frequency strategy.
const FrequencyName = "frequency"

// Frequency labels a chapter by whichever side has more matching tokens. Equal
// counts, including no matches at all, are UNDECIDED.
type Frequency struct{}

// Name implements Strategy.
func (Frequency) Name() string {
	return FrequencyName
}

// Classify implements Strategy.
func (Frequency) Classify(tokens []string, war, peace *terms.Set) Result {
	result := Result{War: match(tokens, war), Peace: match(tokens, peace)}

	switch {
	case result.War.Count > result.Peace.Count:
		result.Label = War
	case result.Peace.Count > result.War.Count:
		result.Label = Peace
	default:
		result.Label = Undecided
	}
	return result
}
