package driven

import "context"

// GenerationService produces text from a prompt. Provider selection
// happens once at construction via explicit configuration; implementations
// exist per vendor (Anthropic, OpenAI, Ollama) behind this one contract.
type GenerationService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at startup before committing to the external path.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
