package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultTopK is the result count used when the caller passes k <= 0.
const DefaultTopK = 5

// SearchService provides lexical, vector and hybrid search over the
// fitted indexes.
type SearchService struct {
	searchEngine     driven.SearchEngine
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
}

// NewSearchService creates a new search service.
// The vectorIndex and embeddingService parameters are optional (can be
// nil); without both, only TextSearch is available and HybridSearch
// degrades to lexical results.
func NewSearchService(
	searchEngine driven.SearchEngine,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
) *SearchService {
	return &SearchService{
		searchEngine:     searchEngine,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
	}
}

// TextSearch performs lexical full-text search.
func (s *SearchService) TextSearch(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if s.searchEngine == nil {
		return nil, domain.ErrSearchUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}
	if k <= 0 {
		k = DefaultTopK
	}
	logger.Debug("Text search: query=%q, k=%d", query, k)

	hits, err := s.searchEngine.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	logger.Debug("Text search: %d hits", len(hits))
	return rank(hits), nil
}

// VectorSearch performs embedding similarity search.
func (s *SearchService) VectorSearch(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if s.vectorIndex == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if s.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}
	if k <= 0 {
		k = DefaultTopK
	}
	logger.Debug("Vector search: query=%q, k=%d", query, k)

	embedding, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	hits, err := s.vectorIndex.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))
	return rank(hits), nil
}

// HybridSearch runs text and vector search in parallel, concatenates
// the lists lexical-first, and removes duplicate chunks. Order is
// first-seen; scores from the two indexes are not fused. If one side
// fails the other's results are returned alone.
func (s *SearchService) HybridSearch(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	logger.Section("Hybrid Search")

	var textResults, vectorResults []domain.SearchResult
	var textErr, vectorErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		textResults, textErr = s.TextSearch(ctx, query, k)
	}()

	go func() {
		defer wg.Done()
		vectorResults, vectorErr = s.VectorSearch(ctx, query, k)
	}()

	wg.Wait()

	if textErr != nil && vectorErr != nil {
		logger.Warn("Hybrid search: both text and vector searches failed")
		return nil, fmt.Errorf("hybrid search: text=%w, vector=%w", textErr, vectorErr)
	}
	if textErr != nil {
		logger.Warn("Hybrid search: text search failed, using vector results only: %v", textErr)
		return domain.DedupeResults(vectorResults), nil
	}
	if vectorErr != nil {
		logger.Warn("Hybrid search: vector search failed, using text results only: %v", vectorErr)
		return domain.DedupeResults(textResults), nil
	}

	combined := make([]domain.SearchResult, 0, len(textResults)+len(vectorResults))
	combined = append(combined, textResults...)
	combined = append(combined, vectorResults...)
	deduped := domain.DedupeResults(combined)
	logger.Debug("Hybrid search: %d text + %d vector -> %d after dedup",
		len(textResults), len(vectorResults), len(deduped))
	return deduped, nil
}

// rank assigns 1-based ranks in list order.
func rank(results []domain.SearchResult) []domain.SearchResult {
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}
