// Package bleve provides a lexical search engine backed by an
// in-memory bleve full-text index.
package bleve

import (
	"context"
	"fmt"
	"sync"

	blv "github.com/blevesearch/bleve"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// indexDoc is the shape bleve indexes per chunk. Only searchable text
// fields are included; everything else stays in the chunk map.
type indexDoc struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Engine is an in-memory full-text search engine over chunks.
type Engine struct {
	mu     sync.RWMutex
	index  blv.Index
	chunks map[string]domain.Chunk
}

// NewEngine creates an empty engine. Call Fit to index a corpus.
func NewEngine() (*Engine, error) {
	index, err := blv.NewMemOnly(blv.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &Engine{
		index:  index,
		chunks: make(map[string]domain.Chunk),
	}, nil
}

// Fit replaces the engine's corpus with the given chunks.
func (e *Engine) Fit(_ context.Context, chunks []domain.Chunk) error {
	index, err := blv.NewMemOnly(blv.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create bleve index: %w", err)
	}

	batch := index.NewBatch()
	meta := make(map[string]domain.Chunk, len(chunks))
	for i := range chunks {
		c := chunks[i]
		doc := indexDoc{
			Filename: c.Filename,
			Title:    c.Title,
			Content:  c.Text(),
		}
		if err := batch.Index(c.ID, doc); err != nil {
			return fmt.Errorf("index chunk %s: %w", c.ID, err)
		}
		meta[c.ID] = c
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}

	e.mu.Lock()
	old := e.index
	e.index = index
	e.chunks = meta
	e.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			logger.Warn("Failed to close previous index: %v", err)
		}
	}
	logger.Debug("Bleve index fitted with %d chunks", len(chunks))
	return nil
}

// Search runs a query string search and returns up to k results in
// score order.
func (e *Engine) Search(_ context.Context, query string, k int) ([]domain.SearchResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	q := blv.NewQueryStringQuery(query)
	req := blv.NewSearchRequestOptions(q, k, 0, false)
	res, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(res.Hits))
	for i, hit := range res.Hits {
		chunk, ok := e.chunks[hit.ID]
		if !ok {
			continue
		}
		results = append(results, domain.SearchResult{
			Chunk: chunk,
			Score: hit.Score,
			Rank:  i + 1,
		})
	}
	return results, nil
}

// Close releases the index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		return nil
	}
	err := e.index.Close()
	e.index = nil
	return err
}
