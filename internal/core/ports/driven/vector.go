package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// VectorIndex provides semantic similarity search over chunk embeddings.
type VectorIndex interface {
	// Fit stores one embedding per chunk, in the same order as the
	// chunk slice. Lengths must match.
	Fit(ctx context.Context, chunks []domain.Chunk, embeddings [][]float32) error

	// Search finds the k nearest chunks to the query vector by
	// cosine similarity.
	Search(ctx context.Context, query []float32, k int) ([]domain.SearchResult, error)

	// Close releases resources.
	Close() error
}
