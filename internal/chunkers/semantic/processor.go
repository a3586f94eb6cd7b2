// Package semantic provides an LLM-driven section chunking processor.
//
// Instead of fixed windows, the document is sent to a language model
// that splits it into self-contained topical sections delimited by
// "---" markers. When the model returns no usable sections the
// processor falls back to sliding-window chunking so indexing never
// produces an empty corpus for a non-empty document.
package semantic

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docent/internal/chunkers/window"
	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

const sectionDelimiter = "---"

const promptTemplate = `Split the provided document into logical sections
that make sense for a Q&A system.

Each section should be self-contained and cover
a specific topic or concept.

<DOCUMENT>
%s
</DOCUMENT>

Use this format:

## Section Name

Section content with all relevant details

---

## Another Section Name

Another section content

---`

// Processor splits document content into model-chosen sections.
type Processor struct {
	llm      driven.LLMService
	fallback *window.Processor
}

// New creates a semantic processor backed by the given LLM service.
func New(llm driven.LLMService) (*Processor, error) {
	if llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	fallback, err := window.New(window.DefaultSize, window.DefaultStep)
	if err != nil {
		return nil, err
	}
	return &Processor{llm: llm, fallback: fallback}, nil
}

// Name returns the chunker name.
func (p *Processor) Name() string {
	return "semantic"
}

// Chunk asks the model to section the document, then splits the
// response on "---" markers. Blank sections are discarded. If no
// sections remain, the sliding-window fallback chunks the document
// instead.
func (p *Processor) Chunk(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc.Content == "" {
		return nil, nil
	}

	prompt := fmt.Sprintf(promptTemplate, doc.Content)
	response, err := p.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", doc.Filename, err)
	}

	sections := splitSections(response)
	if len(sections) == 0 {
		logger.Warn("Model returned no sections for %s, falling back to window chunking", doc.Filename)
		return p.fallback.Chunk(ctx, doc)
	}
	logger.Debug("Sectioned %s into %d sections", doc.Filename, len(sections))

	chunks := make([]domain.Chunk, 0, len(sections))
	for i, section := range sections {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			Title:      doc.Title,
			Section:    section,
			Position:   i,
			Metadata:   doc.Metadata,
		})
	}
	return chunks, nil
}

// splitSections cuts the model response on delimiter lines and drops
// blank pieces.
func splitSections(response string) []string {
	pieces := strings.Split(response, sectionDelimiter)
	sections := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			sections = append(sections, piece)
		}
	}
	return sections
}
