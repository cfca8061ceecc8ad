package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driving"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService retrieves chunks semantically similar to a query.
type SearchService struct {
	embedder    driven.EmbeddingService
	index       driven.VectorIndex
	defaultTopK int
}

// NewSearchService creates a new search service.
func NewSearchService(embedder driven.EmbeddingService, index driven.VectorIndex, cfg domain.Config) *SearchService {
	return &SearchService{
		embedder:    embedder,
		index:       index,
		defaultTopK: cfg.TopK,
	}
}

// Search embeds the query and returns the top-k most similar stored chunks.
func (s *SearchService) Search(
	ctx context.Context, query string, topK int, filter map[string]string,
) ([]domain.SimilarityResult, error) {
	logger.Section("Similarity Search")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SimilarityResult{}, nil
	}

	if topK <= 0 {
		topK = s.defaultTopK
	}
	logger.Debug("Query: %q, top_k=%d, filter=%v", query, topK, filter)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.index.Query(ctx, vector, topK, filter)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	logger.Debug("Found %d results", len(results))
	return results, nil
}
