package app

import (
	"fmt"
	"strings"

	"github.com/chriscorrea/warpeace/internal/chapter"
	"github.com/chriscorrea/warpeace/internal/classify"
	"github.com/chriscorrea/warpeace/internal/terms"
)

// OutputFormat defines how a Report is rendered.
type OutputFormat int

const (
	// one line per chapter (default)
	Text OutputFormat = iota
	// indented JSON document
	JSON
	// YAML document
	YAML
)

// String returns the configuration name of the format.
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// MarshalText encodes the format by name.
func (f OutputFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseOutputFormat maps a configuration name to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Text, fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// Config holds all options for one classification run.
type Config struct {
	Source         string `yaml:"source"`      // book path, URL, or "-" for stdin
	WarTermsPath   string `yaml:"war_terms"`   // newline-delimited war vocabulary
	PeaceTermsPath string `yaml:"peace_terms"` // newline-delimited peace vocabulary

	Strategy    string `yaml:"strategy"`     // "frequency" or "weighted"
	Spread      string `yaml:"spread"`       // "alternating" or "span"; weighted only
	NoUndecided bool   `yaml:"no_undecided"` // fold UNDECIDED into PEACE
	Stem        bool   `yaml:"stem"`         // Snowball-stem terms and tokens
	Workers     int    `yaml:"workers"`      // concurrent chapter classifications; <= 1 is sequential

	Heading   string `yaml:"heading"`    // chapter keyword
	EndMarker string `yaml:"end_marker"` // literal end-of-book marker; empty uses the Gutenberg banner

	Relevance bool `yaml:"relevance"` // add BM25md relevance scores to the report

	Format  OutputFormat `yaml:"format"`
	Bare    bool         `yaml:"bare"`    // text format: print only the label
	Summary bool         `yaml:"summary"` // text format: append label totals
	Color   bool         `yaml:"-"`       // colour labels; set by the CLI for terminals
	Quiet   bool         `yaml:"quiet"`
	Debug   bool         `yaml:"debug"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		WarTermsPath:   terms.DefaultWarPath,
		PeaceTermsPath: terms.DefaultPeacePath,
		Strategy:       classify.FrequencyName,
		Spread:         classify.Alternating.String(),
		Workers:        1,
		Heading:        chapter.DefaultHeading,
		Format:         Text,
	}
}

// TieBreak returns the tie-break policy selected by the configuration.
func (c Config) TieBreak() classify.TieBreak {
	if c.NoUndecided {
		return classify.TiePeace
	}
	return classify.TieUndecided
}

// strategy resolves the configured strategy names.
func (c Config) strategy() (classify.Strategy, error) {
	mode, err := classify.ParseSpreadMode(c.Spread)
	if err != nil {
		return nil, err
	}
	return classify.StrategyByName(c.Strategy, mode)
}

// segmenter builds the chapter segmenter for the configured markers.
func (c Config) segmenter() *chapter.Segmenter {
	var opts []chapter.Option
	if c.Heading != "" {
		opts = append(opts, chapter.WithHeading(c.Heading))
	}
	if c.EndMarker != "" {
		opts = append(opts, chapter.WithEndMarker(c.EndMarker))
	}
	return chapter.NewSegmenter(opts...)
}
