package domain

import "fmt"

// Default processing values. They mirror the defaults the index was built
// with; changing them for an existing data directory forces re-ingestion.
const (
	DefaultChunkSize            = 1000
	DefaultChunkOverlap         = 200
	DefaultMaxChunksPerDocument = 100
	DefaultVectorDimension      = 1536
	DefaultTopK                 = 10
	DefaultExcerptLength        = 1000
)

// Config is the explicit configuration for the whole pipeline. It is
// constructed once (from file and flags) and passed into each component's
// constructor; there is no ambient global state.
type Config struct {
	// DataDir is where the vector index and document registry live.
	// Empty means ~/.proposalcraft/data.
	DataDir string `toml:"data_dir"`

	// ChunkSize is the target chunk size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between adjacent chunks in characters.
	ChunkOverlap int `toml:"chunk_overlap"`

	// MaxChunksPerDocument caps how many chunks a single document may
	// contribute; extra chunks are dropped.
	MaxChunksPerDocument int `toml:"max_chunks_per_document"`

	// VectorDimension is the fixed process-wide embedding dimension.
	VectorDimension int `toml:"vector_dimension"`

	// TopK is the default number of results per query.
	TopK int `toml:"top_k"`

	// ExcerptLength bounds the source_text excerpt stored per chunk.
	ExcerptLength int `toml:"excerpt_length"`

	// Embedding configures the external embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Generation configures the external generation provider.
	Generation GenerationConfig `toml:"generation"`
}

// EmbeddingConfig selects and configures the external embedding provider.
// An empty Provider means no external capability: the deterministic local
// fallback serves every call.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama". Empty disables the external path.
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates hosted providers.
	APIKey string `toml:"api_key"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// TimeoutSeconds bounds each provider call.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// IsConfigured reports whether an external embedding provider is selected.
func (c EmbeddingConfig) IsConfigured() bool {
	return c.Provider != ""
}

// GenerationConfig selects and configures the external generation provider.
// An empty Provider means proposals come from the template fallback.
type GenerationConfig struct {
	// Provider is "anthropic", "openai" or "ollama". Empty disables the
	// external path.
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates hosted providers.
	APIKey string `toml:"api_key"`

	// Model is the generation model name.
	Model string `toml:"model"`

	// TimeoutSeconds bounds each provider call.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxTokens caps the generated proposal length.
	MaxTokens int `toml:"max_tokens"`

	// Temperature controls generation randomness.
	Temperature float64 `toml:"temperature"`
}

// IsConfigured reports whether an external generation provider is selected.
func (c GenerationConfig) IsConfigured() bool {
	return c.Provider != ""
}

// DefaultConfig returns a Config with every processing default applied.
func DefaultConfig() Config {
	return Config{
		ChunkSize:            DefaultChunkSize,
		ChunkOverlap:         DefaultChunkOverlap,
		MaxChunksPerDocument: DefaultMaxChunksPerDocument,
		VectorDimension:      DefaultVectorDimension,
		TopK:                 DefaultTopK,
		ExcerptLength:        DefaultExcerptLength,
		Generation: GenerationConfig{
			MaxTokens:   4000,
			Temperature: 0.7,
		},
	}
}

// ApplyDefaults fills any zero-valued processing field with its default.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.ChunkOverlap <= 0 {
		c.ChunkOverlap = def.ChunkOverlap
	}
	if c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = c.ChunkSize / 4
	}
	if c.MaxChunksPerDocument <= 0 {
		c.MaxChunksPerDocument = def.MaxChunksPerDocument
	}
	if c.VectorDimension <= 0 {
		c.VectorDimension = def.VectorDimension
	}
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = def.ExcerptLength
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = def.Generation.MaxTokens
	}
	if c.Generation.Temperature <= 0 {
		c.Generation.Temperature = def.Generation.Temperature
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", ErrInvalidInput)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap must be in [0, chunk_size)", ErrInvalidInput)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("%w: vector_dimension must be positive", ErrInvalidInput)
	}
	if c.MaxChunksPerDocument <= 0 {
		return fmt.Errorf("%w: max_chunks_per_document must be positive", ErrInvalidInput)
	}
	return nil
}
