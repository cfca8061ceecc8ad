package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

func TestSearchEmptyQuery(t *testing.T) {
	embedder := &mockEmbedder{dimension: 4}
	svc := NewSearchService(embedder, newMockVectorIndex(), domain.DefaultConfig())

	results, err := svc.Search(context.Background(), "   ", 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, embedder.calls, "empty query must not be embedded")
}

func TestSearchReturnsRankedHits(t *testing.T) {
	index := newMockVectorIndex()
	index.hits = []domain.SimilarityResult{
		{ID: "doc1:chunk_0", Score: 0.9},
		{ID: "doc2:chunk_1", Score: 0.4},
	}
	svc := NewSearchService(&mockEmbedder{dimension: 4}, index, domain.DefaultConfig())

	results, err := svc.Search(context.Background(), "warehouse automation", 5, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "doc1:chunk_0", results[0].ID)
}

func TestSearchDefaultTopK(t *testing.T) {
	index := newMockVectorIndex()
	for i := 0; i < 20; i++ {
		index.hits = append(index.hits, domain.SimilarityResult{ID: domain.ChunkID("doc", i)})
	}
	cfg := domain.DefaultConfig()
	cfg.TopK = 3
	svc := NewSearchService(&mockEmbedder{dimension: 4}, index, cfg)

	results, err := svc.Search(context.Background(), "query", 0, nil)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchEmbedFailurePropagates(t *testing.T) {
	embedder := &mockEmbedder{dimension: 4, embedErr: assert.AnError}
	svc := NewSearchService(embedder, newMockVectorIndex(), domain.DefaultConfig())

	_, err := svc.Search(context.Background(), "query", 5, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
