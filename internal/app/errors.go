package app

import (
	"errors"
	"fmt"
)

// Stage is a state of the classification pipeline.
type Stage int

const (
	// Loading reads the term lists and the book.
	Loading Stage = iota
	// Classifying segments the book and labels every chapter.
	Classifying
	// Done means every chapter has a label.
	Done
	// Failed is absorbing; no output is produced.
	Failed
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case Loading:
		return "loading"
	case Classifying:
		return "classifying"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Kind classifies a pipeline failure for reporting.
type Kind int

const (
	// KindUsage is an invalid invocation or configuration value.
	KindUsage Kind = iota
	// KindFatal is an unreadable term list; the run cannot mean anything.
	KindFatal
	// KindInput is an unreadable book or a book without chapters.
	KindInput
	// KindCanceled is an interrupted run.
	KindCanceled
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindFatal:
		return "fatal"
	case KindInput:
		return "input"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSources is returned when no book source is configured.
	ErrNoSources = errors.New("no book source provided")
	// ErrNoChapters is returned when the book has no recognizable chapter headings.
	ErrNoChapters = errors.New("could not find chapters")
)

// Error is a pipeline failure annotated with where it happened and how bad it is.
type Error struct {
	Stage Stage
	Kind  Kind
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindInput for errors not raised by the pipeline.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInput
}
