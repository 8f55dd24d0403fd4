// Package app contains the classification pipeline behind the warpeace CLI.
// It sequences loading, segmentation and classification, separated from CLI concerns.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/chriscorrea/warpeace/internal/chapter"
	"github.com/chriscorrea/warpeace/internal/classify"
	"github.com/chriscorrea/warpeace/internal/counter"
	"github.com/chriscorrea/warpeace/internal/extract"
	"github.com/chriscorrea/warpeace/internal/fetch"
	"github.com/chriscorrea/warpeace/internal/relevance"
	"github.com/chriscorrea/warpeace/internal/spinner"
	"github.com/chriscorrea/warpeace/internal/terms"
	"github.com/chriscorrea/warpeace/internal/text"
)

// pipeline tracks the stage of one run.
type pipeline struct {
	stage Stage
}

func (p *pipeline) enter(next Stage) {
	slog.Debug("Pipeline stage", "from", p.stage, "to", next)
	p.stage = next
}

// fail moves the pipeline to Failed and wraps err with the stage it happened in.
func (p *pipeline) fail(kind Kind, op string, err error) error {
	failed := &Error{Stage: p.stage, Kind: kind, Op: op, Err: err}
	p.enter(Failed)
	return failed
}

// Run executes one classification run with the given configuration.
//
// Processing Pipeline:
// 1. Loading: read both term lists (fatal on failure), then the book
// 2. Classifying: segment the book and label every chapter in book order
// 3. Done: return the report; nothing is printed here
//
// ctx allows cancellation of URL fetches and of classification between chapters.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	p := &pipeline{stage: Loading}

	if cfg.Source == "" {
		return nil, p.fail(KindUsage, "check configuration", ErrNoSources)
	}
	strategy, err := cfg.strategy()
	if err != nil {
		return nil, p.fail(KindUsage, "check configuration", err)
	}

	// step 1: load vocabulary, then the book
	stemmer := text.NewStemmer(cfg.Stem)
	war, err := terms.Load(cfg.WarTermsPath, terms.WithStemmer(stemmer))
	if err != nil {
		return nil, p.fail(KindFatal, "could not read war terms", err)
	}
	peace, err := terms.Load(cfg.PeaceTermsPath, terms.WithStemmer(stemmer))
	if err != nil {
		return nil, p.fail(KindFatal, "could not read peace terms", err)
	}

	book, err := loadBook(ctx, cfg.Source)
	if err != nil {
		return nil, p.fail(KindInput, fmt.Sprintf("could not read file %s", cfg.Source), err)
	}

	// step 2: segment and classify
	p.enter(Classifying)
	chapters, err := cfg.segmenter().Split(book)
	if err != nil {
		return nil, p.fail(KindInput, "segment book", err)
	}
	if len(chapters) == 0 {
		return nil, p.fail(KindInput, fmt.Sprintf("segment %s", cfg.Source), ErrNoChapters)
	}
	slog.Info("Found chapters", "source", cfg.Source, "chapters", len(chapters))

	classifier := classify.NewClassifier(strategy, cfg.TieBreak(), stemmer, war, peace)
	results, err := classifyAll(ctx, classifier, chapters, cfg.Workers, !cfg.Quiet)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, p.fail(KindCanceled, "classify chapters", err)
		}
		return nil, p.fail(KindInput, "classify chapters", err)
	}

	report := newReport(cfg, strategy, chapters, results)
	if cfg.Relevance {
		addRelevance(report, chapters, war, peace)
	}

	// step 3: done
	p.enter(Done)
	return report, nil
}

// loadBook reads a source and returns its cleaned lines joined by single spaces.
func loadBook(ctx context.Context, source string) (string, error) {
	raw, err := fetch.ReadBook(ctx, source)
	if err != nil {
		return "", err
	}

	content := string(raw.Data)
	if extract.IsHTML(raw.Name, raw.ContentType, raw.Data) {
		slog.Debug("Converting HTML book to text", "source", raw.Name)
		if content, err = extract.ToTextBytes(raw.Data); err != nil {
			return "", err
		}
	}

	lines := text.CleanLines(text.SplitLines(content))
	slog.Debug("Book loaded", "source", raw.Name, "bytes", len(raw.Data), "lines", len(lines))
	return text.JoinLines(lines), nil
}

// classifyAll labels every chapter, running up to workers classifications at once.
// Results are stored by chapter position so the output order never depends on
// scheduling.
func classifyAll(ctx context.Context, classifier *classify.Classifier, chapters []chapter.Chapter, workers int, showProgress bool) ([]classify.Result, error) {
	if workers < 1 {
		workers = 1
	}

	var sp *spinner.Spinner
	if showProgress && spinner.IsTerminal(os.Stderr) {
		sp = spinner.New(ctx, os.Stderr, "Classifying chapters...")
		sp.Start()
		defer sp.Stop()
	}

	results := make([]classify.Result, len(chapters))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ch := range chapters {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = classifier.Chapter(ch.Body)
			if sp != nil {
				sp.Progress(int(done.Add(1)), len(chapters))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancellation between submissions leaves later chapters unclassified
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("Classified chapters", "chapters", len(chapters), "workers", workers, "strategy", classifier.Strategy().Name())
	return results, nil
}

// addRelevance scores every chapter against both vocabularies with BM25md.
func addRelevance(report *Report, chapters []chapter.Chapter, war, peace *terms.Set) {
	index := relevance.NewIndex(chapter.Bodies(chapters))
	scores := index.Chapters(relevance.Query(war.Terms()), relevance.Query(peace.Terms()))
	for i := range report.Chapters {
		report.Chapters[i].Relevance = &scores[i]
	}
}

// measure returns chapter length statistics.
func measure(chapters []chapter.Chapter) []counter.Stats {
	m := counter.NewMeasurer()
	stats := make([]counter.Stats, len(chapters))
	for i, ch := range chapters {
		stats[i] = m.Measure(ch.Body)
	}
	return stats
}
