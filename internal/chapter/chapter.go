// Package chapter splits joined book text into ordered chapter bodies.
//
// A chapter starts at a heading of the form "CHAPTER <1-2 digit number>" and runs up
// to, but not including, the next heading or the end-of-book marker. The boundary is
// matched with a lookahead so the next heading is left in place for the next match.
// Go's RE2-based regexp has no lookahead, so the pattern runs on regexp2.
//
// Usage Example:
//
//	seg := chapter.NewSegmenter()
//	for ch, err := range seg.All(book) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(ch.Number, ch.Body)
//	}
package chapter

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	// DefaultHeading is the keyword that opens every chapter.
	DefaultHeading = "CHAPTER"

	// defaultEndPattern matches the Project Gutenberg closing banner, with or without
	// a space after the asterisks.
	defaultEndPattern = `\*\*\* ?END OF`
)

// Chapter is one body of text between two structural markers.
type Chapter struct {
	Number  int    // 1-based order of appearance in the book
	Heading string // marker text, e.g. "CHAPTER 12"
	Body    string // text after the heading, trimmed
	Offset  int    // rune offset of the heading within the segmented text
}

// Segmenter extracts chapters with a compiled structural pattern.
type Segmenter struct {
	pattern *regexp2.Regexp
	heading string
}

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	heading    string
	endPattern string
}

// WithHeading replaces the chapter keyword. The keyword is matched literally and
// case-sensitively.
func WithHeading(keyword string) Option {
	return func(c *config) {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			c.heading = keyword
		}
	}
}

// WithEndMarker replaces the end-of-book marker with a literal string.
func WithEndMarker(marker string) Option {
	return func(c *config) {
		if marker = strings.TrimSpace(marker); marker != "" {
			c.endPattern = regexp2.Escape(marker)
		}
	}
}

// NewSegmenter compiles the chapter pattern.
func NewSegmenter(opts ...Option) *Segmenter {
	c := config{heading: DefaultHeading, endPattern: defaultEndPattern}
	for _, opt := range opts {
		opt(&c)
	}

	heading := regexp2.Escape(c.heading)
	// group 1: heading, group 2: body. The body is lazy and the boundary is a
	// lookahead for the next heading, the end marker, or the end of the text.
	expr := fmt.Sprintf(`(%[1]s \d{1,2})\b ?(.*?) ?(?=%[1]s \d{1,2}\b|%[2]s|$)`, heading, c.endPattern)

	slog.Debug("Compiled chapter pattern", "pattern", expr)
	return &Segmenter{
		pattern: regexp2.MustCompile(expr, regexp2.Singleline),
		heading: c.heading,
	}
}

// All yields the chapters of text in left-to-right order. The sequence is lazy and
// forward-only; iterate again to restart from the first chapter. Iteration stops at
// the first matching error, which is yielded with a zero Chapter.
func (s *Segmenter) All(text string) iter.Seq2[Chapter, error] {
	return func(yield func(Chapter, error) bool) {
		m, err := s.pattern.FindStringMatch(text)
		number := 0
		for {
			if err != nil {
				yield(Chapter{}, fmt.Errorf("failed to match chapter %d: %w", number+1, err))
				return
			}
			if m == nil {
				return
			}

			number++
			ch := Chapter{
				Number:  number,
				Heading: m.GroupByNumber(1).String(),
				Body:    strings.TrimSpace(m.GroupByNumber(2).String()),
				Offset:  m.Index,
			}
			if !yield(ch, nil) {
				return
			}

			m, err = s.pattern.FindNextMatch(m)
		}
	}
}

// Split collects every chapter of text. A text without chapter headings yields an
// empty slice and no error.
func (s *Segmenter) Split(text string) ([]Chapter, error) {
	chapters := []Chapter{}
	for ch, err := range s.All(text) {
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}

	slog.Debug("Segmented book", "heading", s.heading, "chapters", len(chapters))
	return chapters, nil
}

// Bodies returns just the body text of each chapter, in order.
func Bodies(chapters []Chapter) []string {
	bodies := make([]string, len(chapters))
	for i, ch := range chapters {
		bodies[i] = ch.Body
	}
	return bodies
}
