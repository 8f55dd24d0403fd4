// Package relevance ranks chapters against a theme's vocabulary with BM25md.
//
// The scores are informational: they show how strongly each chapter matches a term
// list relative to the rest of the book, but they never change a chapter's label.
package relevance

import (
	"log/slog"
	"strings"

	"github.com/chriscorrea/bm25md"
)

// Scores holds the relevance of one chapter to each theme.
type Scores struct {
	War   float64 `json:"war" yaml:"war"`
	Peace float64 `json:"peace" yaml:"peace"`
}

// Index is a BM25md corpus built from the chapter bodies of one book.
type Index struct {
	corpus *bm25md.Corpus
	size   int
}

// NewIndex adds every chapter body to a fresh corpus. Document IDs are the chapter
// positions in bodies.
func NewIndex(bodies []string) *Index {
	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()

	for i, body := range bodies {
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   parser.ParseDocument(body),
			Original: body,
		})
	}

	slog.Debug("Built relevance index", "chapters", len(bodies))
	return &Index{corpus: corpus, size: len(bodies)}
}

// Query joins a term list into a single BM25 query.
func Query(terms []string) string {
	return strings.Join(terms, " ")
}

// Score returns the BM25md score of the chapter at position i for query. An empty
// query or an out-of-range position scores zero.
func (x *Index) Score(query string, i int) float64 {
	if strings.TrimSpace(query) == "" || i < 0 || i >= x.size {
		return 0
	}
	return x.corpus.Score(query, i)
}

// Chapters scores every chapter against both theme queries, in chapter order.
func (x *Index) Chapters(warQuery, peaceQuery string) []Scores {
	scores := make([]Scores, x.size)
	for i := range scores {
		scores[i] = Scores{
			War:   x.Score(warQuery, i),
			Peace: x.Score(peaceQuery, i),
		}
	}
	return scores
}
