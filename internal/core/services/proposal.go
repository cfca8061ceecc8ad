package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driving"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// Ensure ProposalService implements the interface.
var _ driving.ProposalService = (*ProposalService)(nil)

// maxProposalSources caps how many retrieval hits are reported back as
// proposal sources.
const maxProposalSources = 5

// ProposalService assembles retrieved context into a proposal. Generation
// prefers the external provider; the first failure permanently degrades the
// service to the deterministic template renderer.
type ProposalService struct {
	search    driving.SearchService
	generator driven.GenerationService // nil when no external provider
	renderer  driven.ProposalRenderer

	maxTokens   int
	temperature float64

	mu    sync.Mutex
	state domain.ProviderState
}

// NewProposalService creates a new proposal service. generator may be nil,
// in which case every proposal comes from the renderer.
func NewProposalService(
	search driving.SearchService,
	generator driven.GenerationService,
	renderer driven.ProposalRenderer,
	cfg domain.Config,
) *ProposalService {
	state := domain.StateUninitialized
	if generator == nil {
		state = domain.StateUsingFallback
	}
	return &ProposalService{
		search:      search,
		generator:   generator,
		renderer:    renderer,
		maxTokens:   cfg.Generation.MaxTokens,
		temperature: cfg.Generation.Temperature,
		state:       state,
	}
}

// State reports whether generation is served externally or by the template
// fallback.
func (s *ProposalService) State() domain.ProviderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generate retrieves context for the query and produces a proposal. When at
// least one chunk is retrieved the result always carries a proposal body; a
// retrieval miss is reported through the result status, never as an error.
func (s *ProposalService) Generate(
	ctx context.Context, query string, info domain.ContextInfo, topK int,
) (domain.ProposalResult, error) {
	results, err := s.search.Search(ctx, query, topK, nil)
	if err != nil {
		return domain.ProposalResult{}, fmt.Errorf("retrieving context: %w", err)
	}

	if len(results) == 0 {
		return domain.ProposalResult{
			Status:  domain.ProposalStatusError,
			Message: "no relevant documents found",
		}, nil
	}

	proposal := s.generate(ctx, query, info, results)

	return domain.ProposalResult{
		Status:   domain.ProposalStatusSuccess,
		Proposal: proposal,
		Sources:  proposalSources(results),
	}, nil
}

// generate produces the proposal body, degrading to the renderer on the
// first external failure.
func (s *ProposalService) generate(
	ctx context.Context, query string, info domain.ContextInfo, results []domain.SimilarityResult,
) string {
	if s.usingExternal() {
		prompt := BuildProposalPrompt(query, BuildContext(results), info)
		text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
		})
		if err == nil && text != "" {
			s.markExternal()
			return text
		}
		s.degrade(err)
	}
	return s.renderer.Render(query, info, results)
}

// usingExternal reports whether the external path is still available.
func (s *ProposalService) usingExternal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator != nil && s.state != domain.StateUsingFallback
}

// markExternal records the first successful external call.
func (s *ProposalService) markExternal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateUninitialized {
		s.state = domain.StateUsingExternal
	}
}

// degrade switches to the template fallback for the rest of the process
// lifetime. There is no automatic recovery.
func (s *ProposalService) degrade(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateUsingFallback {
		return
	}
	s.state = domain.StateUsingFallback
	if cause != nil {
		logger.Warn("Generation provider failed, using template fallback: %v", cause)
	} else {
		logger.Warn("Generation provider returned no text, using template fallback")
	}
}

// proposalSources maps the top retrieval hits to reportable sources.
func proposalSources(results []domain.SimilarityResult) []domain.ProposalSource {
	if len(results) > maxProposalSources {
		results = results[:maxProposalSources]
	}
	sources := make([]domain.ProposalSource, len(results))
	for i, res := range results {
		sources[i] = domain.ProposalSource{
			FileName:       res.FileName(),
			ChunkID:        res.ID,
			RelevanceScore: res.Score,
		}
	}
	return sources
}
