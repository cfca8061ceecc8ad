// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/nishiki-labs/proposalcraft/internal/adapters/driven/embedding/failover"
	"github.com/nishiki-labs/proposalcraft/internal/adapters/driven/embedding/hashed"
	ollamaembed "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/llm/ollama"
	openaillm "github.com/nishiki-labs/proposalcraft/internal/adapters/driven/llm/openai"
	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
	"github.com/nishiki-labs/proposalcraft/internal/core/ports/driven"
	"github.com/nishiki-labs/proposalcraft/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation. EmbeddingService
// is always usable: when the configured external provider is missing or
// unreachable it wraps the deterministic local embedder instead.
// GenerationService is nil when no external generator is available, in which
// case proposals come from the template renderer.
type InitResult struct {
	EmbeddingService  *failover.EmbeddingService
	GenerationService driven.GenerationService
	Warnings          []string // Non-fatal issues that caused fallback.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.GenerationService != nil {
		r.GenerationService.Close()
	}
}

// Init constructs the embedding and generation services from configuration.
// Provider selection happens exactly once, here; downstream code only sees
// the port interfaces. External providers are pinged up front so a dead
// endpoint degrades at startup rather than mid-ingest.
func Init(cfg domain.Config) *InitResult {
	result := &InitResult{}

	external, warn := createExternalEmbedding(cfg)
	if warn != "" {
		logger.Warn("%s", warn)
		result.Warnings = append(result.Warnings, warn)
	}
	fallback := hashed.NewEmbeddingService(cfg.VectorDimension)
	result.EmbeddingService = failover.NewEmbeddingService(external, fallback)

	gen, warn := createGeneration(cfg)
	if warn != "" {
		logger.Warn("%s", warn)
		result.Warnings = append(result.Warnings, warn)
	}
	result.GenerationService = gen

	return result
}

// createExternalEmbedding builds and validates the configured external
// embedding provider. Returns (nil, warning) when the provider is not
// configured, unreachable, or reports a dimension other than the configured
// one. The index only ever holds vectors of a single length.
func createExternalEmbedding(cfg domain.Config) (driven.EmbeddingService, string) {
	if !cfg.Embedding.IsConfigured() {
		return nil, ""
	}

	svc, err := CreateEmbeddingService(cfg.Embedding, cfg.VectorDimension)
	if err != nil {
		return nil, fmt.Sprintf("embedding provider %q unavailable, using local fallback: %v",
			cfg.Embedding.Provider, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Sprintf("embedding provider %q unreachable, using local fallback: %v",
			cfg.Embedding.Provider, err)
	}

	if dim := svc.Describe().Dimension; dim != cfg.VectorDimension {
		svc.Close()
		return nil, fmt.Sprintf(
			"embedding provider %q produces %d-dimensional vectors but the index expects %d, using local fallback",
			cfg.Embedding.Provider, dim, cfg.VectorDimension)
	}

	return svc, ""
}

// createGeneration builds and validates the configured generation provider.
// Returns (nil, warning) when none is configured or reachable; the caller
// falls back to the template renderer.
func createGeneration(cfg domain.Config) (driven.GenerationService, string) {
	if !cfg.Generation.IsConfigured() {
		return nil, ""
	}

	svc, err := CreateGenerationService(cfg.Generation)
	if err != nil {
		return nil, fmt.Sprintf("generation provider %q unavailable, using template fallback: %v",
			cfg.Generation.Provider, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Sprintf("generation provider %q unreachable, using template fallback: %v",
			cfg.Generation.Provider, err)
	}

	return svc, ""
}

// CreateEmbeddingService creates the appropriate embedding service based on
// configuration. Returns an error for unknown providers. The configured
// vector dimension is passed into the adapter so Describe() reflects what
// the provider is actually asked to produce: OpenAI requests it via the
// dimensions parameter, Ollama reports it for the dimension check at
// startup.
func CreateEmbeddingService(cfg domain.EmbeddingConfig, vectorDimension int) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    timeout(cfg.TimeoutSeconds),
			Dimensions: vectorDimension,
		}), nil

	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    timeout(cfg.TimeoutSeconds),
			Dimensions: vectorDimension,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// CreateGenerationService creates the appropriate generation service based on
// configuration. Returns an error for unknown providers.
func CreateGenerationService(cfg domain.GenerationConfig) (driven.GenerationService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollamallm.NewGenerationService(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout(cfg.TimeoutSeconds),
		}), nil

	case "openai":
		return openaillm.NewGenerationService(openaillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout(cfg.TimeoutSeconds),
		})

	case "anthropic":
		return anthropicllm.NewGenerationService(anthropicllm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout(cfg.TimeoutSeconds),
		})

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}

func timeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 0 // adapter default
	}
	return time.Duration(seconds) * time.Second
}
