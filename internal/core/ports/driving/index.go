package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// IndexService builds the searchable corpus from a documentation repository.
type IndexService interface {
	// BuildIndex loads the repository's documentation, chunks it, and
	// fits the search indexes. Returns a summary of the build.
	BuildIndex(ctx context.Context, owner, repo string) (*domain.IndexStats, error)

	// Fit indexes an already-chunked corpus without loading anything.
	// Chunks that fail validation are skipped.
	Fit(ctx context.Context, chunks []domain.Chunk) error
}
