package driven

import (
	"context"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// Chunker splits a document into an ordered sequence of chunks.
// Chunk order within a document is insertion order.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk produces the chunks for one document. Every chunk
	// belongs to exactly one source document and inherits its
	// provenance fields.
	Chunk(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
