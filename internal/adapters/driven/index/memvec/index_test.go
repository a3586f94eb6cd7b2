package memvec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docent/internal/core/domain"
)

func TestIndex_SearchRanksBySimilarity(t *testing.T) {
	x := NewIndex()
	defer x.Close()

	chunks := []domain.Chunk{
		{ID: "a", Filename: "a.md"},
		{ID: "b", Filename: "b.md"},
		{ID: "c", Filename: "c.md"},
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}
	require.NoError(t, x.Fit(context.Background(), chunks, embeddings))

	results, err := x.Search(context.Background(), []float32{1, 0, 0}, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Chunk.ID)
	assert.Equal(t, "b", results[1].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 2, results[1].Rank)
}

func TestIndex_KLargerThanCorpus(t *testing.T) {
	x := NewIndex()
	require.NoError(t, x.Fit(context.Background(),
		[]domain.Chunk{{ID: "a"}}, [][]float32{{1, 0}}))

	results, err := x.Search(context.Background(), []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestIndex_FitLengthMismatch(t *testing.T) {
	x := NewIndex()
	err := x.Fit(context.Background(), []domain.Chunk{{ID: "a"}}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndex_EmptySearch(t *testing.T) {
	x := NewIndex()
	results, err := x.Search(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	// Mismatched lengths and zero vectors score zero.
	assert.Zero(t, cosine([]float32{1}, []float32{1, 2}))
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 2}))
	assert.Zero(t, cosine(nil, nil))
}
