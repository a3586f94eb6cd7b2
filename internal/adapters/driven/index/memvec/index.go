// Package memvec provides an in-memory vector index using brute-force
// cosine similarity. Documentation corpora are small enough that a
// linear scan outperforms the setup cost of an ANN structure.
package memvec

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	chunk  domain.Chunk
	vector []float32
}

// Index holds chunk embeddings and searches them by cosine similarity.
type Index struct {
	mu      sync.RWMutex
	entries []entry
}

// NewIndex creates an empty vector index. Call Fit to load a corpus.
func NewIndex() *Index {
	return &Index{}
}

// Fit replaces the index contents. Chunks and embeddings are parallel
// slices; a length mismatch is an error.
func (x *Index) Fit(_ context.Context, chunks []domain.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("%w: %d chunks but %d embeddings", domain.ErrInvalidInput, len(chunks), len(embeddings))
	}

	entries := make([]entry, len(chunks))
	for i := range chunks {
		entries[i] = entry{chunk: chunks[i], vector: embeddings[i]}
	}

	x.mu.Lock()
	x.entries = entries
	x.mu.Unlock()

	logger.Debug("Vector index fitted with %d chunks", len(entries))
	return nil
}

// Search returns the k chunks most similar to the query vector, in
// descending similarity order.
func (x *Index) Search(_ context.Context, query []float32, k int) ([]domain.SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, 0, len(x.entries))
	for i := range x.entries {
		scores = append(scores, scored{idx: i, score: cosine(query, x.entries[i].vector)})
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]domain.SearchResult, 0, k)
	for i := 0; i < k; i++ {
		results = append(results, domain.SearchResult{
			Chunk: x.entries[scores[i].idx].chunk,
			Score: scores[i].score,
			Rank:  i + 1,
		})
	}
	return results, nil
}

// Close releases the index contents.
func (x *Index) Close() error {
	x.mu.Lock()
	x.entries = nil
	x.mu.Unlock()
	return nil
}

// cosine computes the cosine similarity of two vectors. Mismatched or
// zero-magnitude vectors score zero.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
