package driving

import (
	"context"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

// ProposalService assembles retrieved context into a generation prompt and
// produces a proposal, falling back to a deterministic template when no
// external generator is available.
type ProposalService interface {
	// Generate retrieves context for the query and generates a proposal.
	// A retrieval miss is reported via ProposalResult.Status, not an error.
	Generate(ctx context.Context, query string, info domain.ContextInfo, topK int) (domain.ProposalResult, error)

	// State reports whether generation is served externally or by the
	// template fallback.
	State() domain.ProviderState
}
