package driving

import (
	"context"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// SearchService retrieves chunks semantically similar to a query.
type SearchService interface {
	// Search embeds the query text, queries the index and returns results
	// unmodified in rank order. An index with no vectors, or a filter that
	// matches nothing, yields an empty slice, not an error.
	Search(ctx context.Context, query string, topK int, filter map[string]string) ([]domain.SimilarityResult, error)
}
