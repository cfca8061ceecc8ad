package services

import (
	"context"
	"strings"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing. It returns a
// constant unit vector per text so similarity math stays trivial.
type mockEmbedder struct {
	dimension int
	embedErr  error
	calls     int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vec := make([]float32, m.dimension)
	vec[0] = 1
	return vec, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (m *mockEmbedder) Describe() driven.EmbeddingInfo {
	return driven.EmbeddingInfo{Provider: "mock", Model: "mock", Dimension: m.dimension}
}

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockVectorIndex implements driven.VectorIndex for testing. It records
// inserted batches and returns canned query hits.
type mockVectorIndex struct {
	records   map[string]domain.VectorRecord
	order     []string
	hits      []domain.SimilarityResult
	insertErr error
	queryErr  error
	deleteErr error
}

func newMockVectorIndex() *mockVectorIndex {
	return &mockVectorIndex{records: make(map[string]domain.VectorRecord)}
}

func (m *mockVectorIndex) InsertBatch(_ context.Context, records []domain.VectorRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, rec := range records {
		if _, ok := m.records[rec.ID]; !ok {
			m.order = append(m.order, rec.ID)
		}
		m.records[rec.ID] = rec
	}
	return nil
}

func (m *mockVectorIndex) Query(_ context.Context, _ []float32, k int, _ map[string]string) ([]domain.SimilarityResult, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if k < len(m.hits) {
		return m.hits[:k], nil
	}
	return m.hits, nil
}

func (m *mockVectorIndex) DeleteDocument(_ context.Context, docID string) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	removed := 0
	kept := m.order[:0]
	for _, id := range m.order {
		if strings.HasPrefix(id, docID+":") {
			delete(m.records, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return removed, nil
}

func (m *mockVectorIndex) Len() int { return len(m.records) }

func (m *mockVectorIndex) Close() error { return nil }

// mockGenerator implements driven.GenerationService for testing.
type mockGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockGenerator) ModelName() string          { return "mock-model" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error               { return nil }

// mockSearchService implements driving.SearchService for proposal tests.
type mockSearchService struct {
	results []domain.SimilarityResult
	err     error
}

func (m *mockSearchService) Search(_ context.Context, _ string, topK int, _ map[string]string) ([]domain.SimilarityResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if topK > 0 && topK < len(m.results) {
		return m.results[:topK], nil
	}
	return m.results, nil
}
