package counter

// Stats is the length of one chapter in every supported unit.
type Stats struct {
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`
}

// Measurer computes Stats with a fixed pair of counters.
type Measurer struct {
	words Counter
	chars Counter
}

// NewMeasurer returns a Measurer backed by the word and character counters.
func NewMeasurer() *Measurer {
	return &Measurer{words: mustCounter(Words), chars: mustCounter(Characters)}
}

// mustCounter is NewCounter for the methods this package defines.
func mustCounter(method CountingMethod) Counter {
	c, err := NewCounter(method)
	if err != nil {
		panic(err)
	}
	return c
}

// Measure returns the Stats of body.
func (m *Measurer) Measure(body string) Stats {
	return Stats{
		Words:      m.words.Count(body),
		Characters: m.chars.Count(body),
	}
}
