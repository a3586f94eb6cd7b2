// Package window provides a sliding-window text chunking processor.
package window

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultSize is the default window size in characters.
const DefaultSize = 2000

// DefaultStep is the default step between window starts in characters.
const DefaultStep = 1000

// Processor splits document content into overlapping fixed-size windows.
// Size and step count characters, not bytes, so multi-byte runes are
// never split across a window boundary. Windows start at offsets 0,
// step, 2*step and so on; consecutive windows overlap by size-step
// characters.
type Processor struct {
	size int
	step int
}

// New creates a sliding-window processor. The parameters must satisfy
// size > step > 0; anything else is rejected rather than clamped, so a
// bad configuration surfaces immediately instead of silently producing
// a different segmentation.
func New(size, step int) (*Processor, error) {
	if step <= 0 || size <= step {
		return nil, fmt.Errorf("size=%d step=%d: %w", size, step, domain.ErrInvalidChunkParams)
	}
	return &Processor{size: size, step: step}, nil
}

// Name returns the chunker name.
func (p *Processor) Name() string {
	return "window"
}

// Chunk splits the document content into windows. Empty content
// produces no chunks.
func (p *Processor) Chunk(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	runes := []rune(doc.Content)
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, n/p.step+1)
	position := 0

	for start := 0; ; start += p.step {
		end := start + p.size
		if end > n {
			end = n
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			Title:      doc.Title,
			Content:    string(runes[start:end]),
			Start:      start,
			Position:   position,
			Metadata:   doc.Metadata,
		})
		position++

		// The last window is the one that reaches the end of the
		// content. A trailing remainder shorter than a full window is
		// covered by that clipped final window.
		if start+p.size >= n {
			break
		}
	}

	return chunks, nil
}
