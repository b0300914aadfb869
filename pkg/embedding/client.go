package embedding

import "context"

// Client generates embedding vectors for text. The vector length is
// determined by the provider and treated as opaque by callers.
type Client interface {
	// EmbedSingle returns the embedding for one text. A non-success
	// provider response surfaces as *types.ProviderError.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Model returns the provider-side model identifier.
	Model() string

	// Close cleans up any resources.
	Close() error
}

// Config holds provider configuration shared by all clients.
type Config struct {
	Provider string // "ollama" or "openai"
	Model    string
	BaseURL  string
	APIKey   string
}
