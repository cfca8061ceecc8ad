package driven

import "github.com/nishiki-labs/proposalcraft/internal/core/domain"

// ProposalRenderer produces a proposal body without any external call.
// It backs the generation fallback path and must be deterministic.
type ProposalRenderer interface {
	// Render builds a proposal from the query, the customer context and
	// the ranked retrieval results. It never fails.
	Render(query string, info domain.ContextInfo, results []domain.SimilarityResult) string
}
