// Package hashed provides the deterministic local embedding fallback used
// when no external embedding provider is reachable. Vectors are drawn from
// a seeded normal distribution, so identical text always yields an
// identical vector and distinct texts yield seed-diverse vectors. The
// vectors carry no semantic signal, but they keep the pipeline exercisable
// and reproducible offline.
package hashed

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Provider is the identity reported by Describe.
const Provider = "hashed"

// EmbeddingService generates seeded pseudo-random unit vectors.
type EmbeddingService struct {
	dimension int
}

// NewEmbeddingService creates a fallback embedder with the given dimension.
func NewEmbeddingService(dimension int) *EmbeddingService {
	return &EmbeddingService{dimension: dimension}
}

// Embed derives a seed from a cryptographic hash of the text, draws the
// configured number of dimensions from a seeded normal distribution, and
// L2-normalises the result. A zero-norm draw is returned unnormalised
// rather than divided by zero.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))

	rng := rand.New(rand.NewSource(seed))
	vec := make([]float32, s.dimension)
	var norm float64
	for i := range vec {
		v := rng.NormFloat64()
		vec[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec, nil
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// EmbedBatch embeds each text in order. The fallback path cannot fail.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Describe reports the provider identity and dimensionality.
func (s *EmbeddingService) Describe() driven.EmbeddingInfo {
	return driven.EmbeddingInfo{
		Provider:  Provider,
		Model:     "sha256-gaussian",
		Dimension: s.dimension,
	}
}

// Ping always succeeds; there is nothing to reach.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
