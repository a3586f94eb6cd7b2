package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docent/internal/core/domain"
	"github.com/custodia-labs/docent/internal/core/ports/driven"
	"github.com/custodia-labs/docent/internal/core/ports/driving"
	"github.com/custodia-labs/docent/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// embedBatchSize bounds how many chunk texts go into one embedding request.
const embedBatchSize = 64

// IndexService builds the searchable corpus: load, chunk, store, fit.
type IndexService struct {
	loader           driven.Loader
	chunker          driven.Chunker
	docStore         driven.DocumentStore
	searchEngine     driven.SearchEngine
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
}

// NewIndexService creates a new index service.
// The vectorIndex and embeddingService parameters are optional (can be
// nil); without both, the build is lexical-only.
func NewIndexService(
	loader driven.Loader,
	chunker driven.Chunker,
	docStore driven.DocumentStore,
	searchEngine driven.SearchEngine,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
) *IndexService {
	return &IndexService{
		loader:           loader,
		chunker:          chunker,
		docStore:         docStore,
		searchEngine:     searchEngine,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
	}
}

// BuildIndex loads the repository's documentation, chunks it, persists
// documents and chunks, and fits the search indexes.
func (s *IndexService) BuildIndex(ctx context.Context, owner, repo string) (*domain.IndexStats, error) {
	logger.Section("Index Build")
	logger.Info("Repository: %s/%s", owner, repo)
	start := time.Now()

	docs, err := s.loader.Load(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("load %s/%s: %w", owner, repo, err)
	}
	logger.Info("Loaded %d documents", len(docs))

	var chunks []domain.Chunk
	for i := range docs {
		doc := &docs[i]
		docChunks, err := s.chunker.Chunk(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.Filename, err)
		}

		if s.docStore != nil {
			if err := s.docStore.SaveDocument(ctx, doc); err != nil {
				return nil, fmt.Errorf("save document %s: %w", doc.Filename, err)
			}
			if err := s.docStore.SaveChunks(ctx, docChunks); err != nil {
				return nil, fmt.Errorf("save chunks for %s: %w", doc.Filename, err)
			}
		}

		chunks = append(chunks, docChunks...)
	}
	logger.Info("Produced %d chunks with %q chunker", len(chunks), s.chunker.Name())

	if err := s.Fit(ctx, chunks); err != nil {
		return nil, err
	}

	stats := &domain.IndexStats{
		Documents: len(docs),
		Chunks:    len(chunks),
		Elapsed:   time.Since(start),
	}
	if s.vectorIndex != nil && s.embeddingService != nil {
		stats.Embedded = len(chunks)
	}
	return stats, nil
}

// Fit indexes an already-chunked corpus. Invalid chunks are skipped
// with a debug message rather than failing the build.
func (s *IndexService) Fit(ctx context.Context, chunks []domain.Chunk) error {
	if s.searchEngine == nil {
		return domain.ErrSearchUnavailable
	}

	valid := make([]domain.Chunk, 0, len(chunks))
	for i := range chunks {
		if !chunks[i].Valid() {
			logger.Debug("Skipping invalid chunk %s (missing filename or text)", chunks[i].ID)
			continue
		}
		valid = append(valid, chunks[i])
	}
	logger.Debug("Fitting %d/%d chunks", len(valid), len(chunks))

	if err := s.searchEngine.Fit(ctx, valid); err != nil {
		return fmt.Errorf("fit search engine: %w", err)
	}

	if s.vectorIndex == nil || s.embeddingService == nil {
		logger.Debug("Vector indexing skipped: embedding or vector index unavailable")
		return nil
	}

	embeddings, err := s.embedChunks(ctx, valid)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if err := s.vectorIndex.Fit(ctx, valid, embeddings); err != nil {
		return fmt.Errorf("fit vector index: %w", err)
	}
	return nil
}

// embedChunks generates embeddings for all chunk texts in batches.
func (s *IndexService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(chunks))
	for lo := 0; lo < len(chunks); lo += embedBatchSize {
		hi := lo + embedBatchSize
		if hi > len(chunks) {
			hi = len(chunks)
		}
		texts := make([]string, 0, hi-lo)
		for i := lo; i < hi; i++ {
			texts = append(texts, chunks[i].Text())
		}
		batch, err := s.embeddingService.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", lo, hi, err)
		}
		embeddings = append(embeddings, batch...)
		logger.Debug("Embedded %d/%d chunks", len(embeddings), len(chunks))
	}
	return embeddings, nil
}
