package driven

import "context"

// EmbeddingService maps text to fixed-dimension vectors.
//
// Note: This is separate from VectorIndex which stores and searches vectors.
// EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - The deterministic local fallback used when no provider is reachable
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. The result has
	// the same length and order as the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Describe reports the provider identity and dimensionality for
	// diagnostics.
	Describe() EmbeddingInfo

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at startup before committing to the external path.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingInfo describes an embedding service.
type EmbeddingInfo struct {
	// Provider is the service identity (e.g. "openai", "ollama", "hashed").
	Provider string

	// Model is the embedding model name.
	Model string

	// Dimension is the embedding vector size. It must match the
	// VectorIndex dimension.
	Dimension int
}
