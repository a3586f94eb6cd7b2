package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// SearchEngine provides full-text search over a fitted chunk corpus.
// Backed by Bleve for BM25-style keyword search.
type SearchEngine interface {
	// Fit builds the index over the given chunks. Callers filter out
	// invalid chunks first; an error on an already-filtered corpus
	// signals a data or schema bug and is propagated, not swallowed.
	Fit(ctx context.Context, chunks []domain.Chunk) error

	// Search performs a ranked keyword query and returns the top-k hits.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// Close releases resources.
	Close() error
}
