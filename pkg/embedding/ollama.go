package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soundprediction/semagraph/pkg/types"
)

const defaultOllamaURL = "http://localhost:11434/api/embeddings"

// OllamaClient talks to an Ollama-style embeddings endpoint.
type OllamaClient struct {
	url        string
	model      string
	httpClient *http.Client
}

// NewOllamaClient creates a client for the given endpoint and model. An
// empty baseURL falls back to the local Ollama default.
func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	return &OllamaClient{
		url:        baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaResponse struct {
	Embedding []float32 `json:"embedding"`
}

// EmbedSingle implements Client.
func (c *OllamaClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &types.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(detail)),
		}
	}

	var parsed ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	return parsed.Embedding, nil
}

// Model implements Client.
func (c *OllamaClient) Model() string { return c.model }

// Close implements Client.
func (c *OllamaClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
