// Package failover wraps an external embedding provider with the
// deterministic local fallback. The first provider failure permanently
// downgrades the service to the fallback for the remainder of its
// lifetime; there is no automatic recovery to the external path within a
// process.
package failover

import (
	"context"
	"sync"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService serves embeds from the external provider until it
// fails, then from the fallback.
type EmbeddingService struct {
	mu       sync.Mutex
	state    domain.ProviderState
	external driven.EmbeddingService // nil when no provider is configured
	fallback driven.EmbeddingService
}

// NewEmbeddingService wraps external with fallback. A nil external starts
// the service in the fallback state immediately.
func NewEmbeddingService(external, fallback driven.EmbeddingService) *EmbeddingService {
	state := domain.StateUsingExternal
	if external == nil {
		state = domain.StateUsingFallback
	}
	return &EmbeddingService{
		state:    state,
		external: external,
		fallback: fallback,
	}
}

// State reports which path is currently serving calls.
func (s *EmbeddingService) State() domain.ProviderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// degrade flips the service to the fallback path. One-directional.
func (s *EmbeddingService) degrade(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateUsingFallback {
		return
	}
	s.state = domain.StateUsingFallback
	logger.Warn("embedding provider failed, switching to local fallback for the rest of this run: %v", cause)
}

// usingExternal reports whether the external path should be tried.
func (s *EmbeddingService) usingExternal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.StateUsingExternal && s.external != nil
}

// Embed generates an embedding, degrading to the fallback on the first
// provider failure.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.usingExternal() {
		vec, err := s.external.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		s.degrade(err)
	}
	return s.fallback.Embed(ctx, text)
}

// EmbedBatch generates embeddings for multiple texts. The result always
// has the same length and order as the input: an item that fails on the
// external path is replaced by a zero vector of the configured dimension
// rather than aborting the batch, and the failure degrades the service so
// the remaining items come from the fallback.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if s.usingExternal() {
		vectors, err := s.external.EmbedBatch(ctx, texts)
		if err == nil {
			return s.fillHoles(ctx, texts, vectors)
		}
		s.degrade(err)
	}
	return s.fallback.EmbedBatch(ctx, texts)
}

// fillHoles substitutes a zero vector for any item the provider failed to
// embed, preserving batch length and order.
func (s *EmbeddingService) fillHoles(_ context.Context, texts []string, vectors [][]float32) ([][]float32, error) {
	dim := s.Describe().Dimension
	if len(vectors) < len(texts) {
		padded := make([][]float32, len(texts))
		copy(padded, vectors)
		vectors = padded
	}
	for i := range vectors {
		if vectors[i] == nil {
			logger.Warn("no embedding for batch item %d, substituting zero vector", i)
			vectors[i] = make([]float32, dim)
		}
	}
	return vectors[:len(texts)], nil
}

// Describe reports the identity of the path currently serving calls.
func (s *EmbeddingService) Describe() driven.EmbeddingInfo {
	if s.usingExternal() {
		return s.external.Describe()
	}
	return s.fallback.Describe()
}

// Ping checks the active path. The fallback path always succeeds.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if s.usingExternal() {
		return s.external.Ping(ctx)
	}
	return s.fallback.Ping(ctx)
}

// Close releases both paths.
func (s *EmbeddingService) Close() error {
	var err error
	if s.external != nil {
		err = s.external.Close()
	}
	if cerr := s.fallback.Close(); err == nil {
		err = cerr
	}
	return err
}
