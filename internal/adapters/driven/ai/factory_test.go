package ai

import (
	"strings"
	"testing"

	"github.com/nishiki-labs/proposalcraft/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         domain.EmbeddingConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "ollama provider creates service",
			cfg: domain.EmbeddingConfig{
				Provider: "ollama",
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			cfg: domain.EmbeddingConfig{
				Provider: "openai",
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name:        "unknown provider returns error",
			cfg:         domain.EmbeddingConfig{Provider: "bedrock"},
			wantErr:     true,
			errContains: "unsupported embedding provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.cfg, 1536)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected a service")
			}
			svc.Close()
		})
	}
}

func TestCreateEmbeddingService_ForwardsDimension(t *testing.T) {
	// The adapters must report the configured index dimension, not a
	// model default, or the startup dimension check rejects valid setups.
	tests := []struct {
		name string
		cfg  domain.EmbeddingConfig
	}{
		{
			name: "ollama",
			cfg: domain.EmbeddingConfig{
				Provider: "ollama",
				Model:    "mxbai-embed-large",
			},
		},
		{
			name: "openai",
			cfg: domain.EmbeddingConfig{
				Provider: "openai",
				APIKey:   "test-key",
				Model:    "text-embedding-3-large",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.cfg, 1024)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer svc.Close()

			if got := svc.Describe().Dimension; got != 1024 {
				t.Errorf("dimension = %d, want 1024", got)
			}
		})
	}
}

func TestCreateGenerationService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         domain.GenerationConfig
		wantErr     bool
		errContains string
	}{
		{
			name: "ollama provider creates service",
			cfg: domain.GenerationConfig{
				Provider: "ollama",
				Model:    "llama3.2",
			},
		},
		{
			name: "openai provider creates service",
			cfg: domain.GenerationConfig{
				Provider: "openai",
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
		},
		{
			name: "anthropic provider creates service",
			cfg: domain.GenerationConfig{
				Provider: "anthropic",
				APIKey:   "test-key",
				Model:    "claude-sonnet-4-5",
			},
		},
		{
			name:        "unknown provider returns error",
			cfg:         domain.GenerationConfig{Provider: "bedrock"},
			wantErr:     true,
			errContains: "unsupported generation provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateGenerationService(tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected a service")
			}
			svc.Close()
		})
	}
}

func TestInitWithoutProviders(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.VectorDimension = 8

	result := Init(cfg)
	defer result.Close()

	if result.EmbeddingService == nil {
		t.Fatal("expected an embedding service even without external providers")
	}
	if got := result.EmbeddingService.Describe().Dimension; got != 8 {
		t.Errorf("dimension = %d, want 8", got)
	}
	if result.GenerationService != nil {
		t.Error("expected nil generation service when none configured")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}
