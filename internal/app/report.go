package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/warpeace/internal/chapter"
	"github.com/chriscorrea/warpeace/internal/classify"
	"github.com/chriscorrea/warpeace/internal/counter"
	"github.com/chriscorrea/warpeace/internal/relevance"
)

// ChapterReport is the outcome for one chapter.
type ChapterReport struct {
	Number    int               `json:"number" yaml:"number"`
	Heading   string            `json:"heading" yaml:"heading"`
	Label     classify.Label    `json:"label" yaml:"label"`
	War       classify.Side     `json:"war" yaml:"war"`
	Peace     classify.Side     `json:"peace" yaml:"peace"`
	Stats     counter.Stats     `json:"stats" yaml:"stats"`
	Relevance *relevance.Scores `json:"relevance,omitempty" yaml:"relevance,omitempty"`
}

// Summary counts chapters per label.
type Summary struct {
	War       int `json:"war" yaml:"war"`
	Peace     int `json:"peace" yaml:"peace"`
	Undecided int `json:"undecided" yaml:"undecided"`
}

// Report is the ordered result of a run.
type Report struct {
	Source   string          `json:"source" yaml:"source"`
	Strategy string          `json:"strategy" yaml:"strategy"`
	Spread   string          `json:"spread,omitempty" yaml:"spread,omitempty"`
	TieBreak string          `json:"tie_break" yaml:"tie_break"`
	Chapters []ChapterReport `json:"chapters" yaml:"chapters"`
	Summary  Summary         `json:"summary" yaml:"summary"`
}

// Labels returns the chapter labels in book order.
func (r *Report) Labels() []classify.Label {
	labels := make([]classify.Label, len(r.Chapters))
	for i, ch := range r.Chapters {
		labels[i] = ch.Label
	}
	return labels
}

func newReport(cfg Config, strategy classify.Strategy, chapters []chapter.Chapter, results []classify.Result) *Report {
	report := &Report{
		Source:   cfg.Source,
		Strategy: strategy.Name(),
		TieBreak: cfg.TieBreak().String(),
		Chapters: make([]ChapterReport, len(chapters)),
	}
	if w, ok := strategy.(classify.Weighted); ok {
		report.Spread = w.Mode.String()
	}

	stats := measure(chapters)
	for i, ch := range chapters {
		result := results[i]
		report.Chapters[i] = ChapterReport{
			Number:  ch.Number,
			Heading: ch.Heading,
			Label:   result.Label,
			War:     result.War,
			Peace:   result.Peace,
			Stats:   stats[i],
		}

		switch result.Label {
		case classify.War:
			report.Summary.War++
		case classify.Peace:
			report.Summary.Peace++
		default:
			report.Summary.Undecided++
		}
	}
	return report
}

// labelStyles colour labels on a terminal.
var labelStyles = map[classify.Label]lipgloss.Style{
	classify.War:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	classify.Peace:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	classify.Undecided: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// RenderOptions control text output.
type RenderOptions struct {
	Format  OutputFormat
	Bare    bool // text: label only, without the "Chapter n: " prefix
	Summary bool // text: trailing totals line
	Color   bool // text: colour labels
}

// RenderOptionsFrom extracts the rendering options of a configuration.
func RenderOptionsFrom(cfg Config) RenderOptions {
	return RenderOptions{Format: cfg.Format, Bare: cfg.Bare, Summary: cfg.Summary, Color: cfg.Color}
}

// Render writes the report to w in the requested format.
func Render(w io.Writer, r *Report, opts RenderOptions) error {
	switch opts.Format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		return enc.Close()
	default:
		return renderText(w, r, opts)
	}
}

func renderText(w io.Writer, r *Report, opts RenderOptions) error {
	for _, ch := range r.Chapters {
		label := ch.Label.String()
		if opts.Color {
			label = labelStyles[ch.Label].Render(label)
		}

		var err error
		if opts.Bare {
			_, err = fmt.Fprintln(w, label)
		} else {
			_, err = fmt.Fprintf(w, "Chapter %d: %s\n", ch.Number, label)
		}
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if opts.Summary {
		if _, err := fmt.Fprintf(w, "War: %d, Peace: %d, Undecided: %d\n",
			r.Summary.War, r.Summary.Peace, r.Summary.Undecided); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}
