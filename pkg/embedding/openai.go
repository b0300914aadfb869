package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/soundprediction/semagraph/pkg/types"
)

// OpenAIClient generates embeddings via any OpenAI-compatible API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI embeddings client. A custom BaseURL
// selects an OpenAI-compatible service; some of those accept any API key.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	var client *openai.Client
	if cfg.BaseURL != "" {
		clientConfig := openai.DefaultConfig(apiKey)
		clientConfig.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(apiKey)
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	return &OpenAIClient{client: client, model: model}
}

// EmbedSingle implements Client.
func (c *OpenAIClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &types.ProviderError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return resp.Data[0].Embedding, nil
}

// Model implements Client.
func (c *OpenAIClient) Model() string { return c.model }

// Close implements Client.
func (c *OpenAIClient) Close() error { return nil }
