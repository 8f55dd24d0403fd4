package classify

import "fmt"

// Label is the thematic verdict for one chapter.
type Label int

const (
	// Undecided means neither theme outweighs the other.
	Undecided Label = iota
	// War means the chapter leans towards the war vocabulary.
	War
	// Peace means the chapter leans towards the peace vocabulary.
	Peace
)

// String returns the upper-case name used in reports.
func (l Label) String() string {
	switch l {
	case Undecided:
		return "UNDECIDED"
	case War:
		return "WAR"
	case Peace:
		return "PEACE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the label by name in JSON and YAML reports.
func (l Label) MarshalText() ([]byte, error) {
	switch l {
	case Undecided, War, Peace:
		return []byte(l.String()), nil
	default:
		return nil, fmt.Errorf("invalid label %d", int(l))
	}
}

// TieBreak decides what happens to chapters that end up UNDECIDED.
type TieBreak int

const (
	// TieUndecided keeps UNDECIDED as a distinct outcome (default).
	TieUndecided TieBreak = iota
	// TiePeace folds UNDECIDED into PEACE for deployments without a third label.
	TiePeace
)

// String returns the configuration name of the tie-break policy.
func (t TieBreak) String() string {
	switch t {
	case TieUndecided:
		return "undecided"
	case TiePeace:
		return "peace"
	default:
		return "unknown"
	}
}

// apply maps a strategy verdict through the tie-break policy.
func (t TieBreak) apply(l Label) Label {
	if t == TiePeace && l == Undecided {
		return Peace
	}
	return l
}
