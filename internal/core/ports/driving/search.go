package driving

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// TextSearch performs lexical full-text search over the index.
	TextSearch(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// VectorSearch performs embedding similarity search over the index.
	VectorSearch(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// HybridSearch runs text and vector search, concatenates the result
	// lists lexical-first, and removes duplicate chunks.
	HybridSearch(ctx context.Context, query string, k int) ([]domain.SearchResult, error)
}
