package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/semagraph/pkg/types"
)

// countingClient is a test double that records provider calls.
type countingClient struct {
	calls atomic.Int64
	vecs  map[string][]float32
	err   error
}

func (c *countingClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	if vec, ok := c.vecs[text]; ok {
		return vec, nil
	}
	return []float32{1, 2, 3}, nil
}

func (c *countingClient) Model() string { return "test-model" }
func (c *countingClient) Close() error  { return nil }

func TestOllamaClientEmbedSingle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "n1: a node", req.Prompt)

		json.NewEncoder(w).Encode(ollamaResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "nomic-embed-text")
	vec, err := client.EmbedSingle(context.Background(), "n1: a node")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestOllamaClientProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "missing-model")
	_, err := client.EmbedSingle(context.Background(), "text")

	var provErr *types.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusNotFound, provErr.StatusCode)
	assert.Contains(t, provErr.Message, "model not found")
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "n1: a node", CacheKey("n1", "a node"))
}

func TestCacheMemoizes(t *testing.T) {
	provider := &countingClient{}
	cache, err := NewCache(provider, 10)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cache.GetOrCompute(ctx, "n1", "a node")
	require.NoError(t, err)
	second, err := cache.GetOrCompute(ctx, "n1", "a node")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), provider.calls.Load(), "second lookup must be served from cache")
}

func TestCacheEmptyDefinitionSkipsProvider(t *testing.T) {
	provider := &countingClient{}
	cache, err := NewCache(provider, 10)
	require.NoError(t, err)

	vec, err := cache.GetOrCompute(context.Background(), "n1", "")
	require.NoError(t, err)
	assert.Nil(t, vec)
	assert.Equal(t, int64(0), provider.calls.Load())
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	provider := &countingClient{err: &types.ProviderError{StatusCode: 500}}
	cache, err := NewCache(provider, 10)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.GetOrCompute(ctx, "n1", "a node")
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len(), "failures must not be cached")

	// Provider recovers; next lookup retries and succeeds.
	provider.err = nil
	vec, err := cache.GetOrCompute(ctx, "n1", "a node")
	require.NoError(t, err)
	assert.NotNil(t, vec)
	assert.Equal(t, int64(2), provider.calls.Load())
}

func TestCacheEvictsLRU(t *testing.T) {
	provider := &countingClient{}
	cache, err := NewCache(provider, 2)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := cache.GetOrCompute(ctx, fmt.Sprintf("n%d", i), "def")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Len())

	// n0 was the least recently used; fetching it again hits the provider.
	before := provider.calls.Load()
	_, err = cache.GetOrCompute(ctx, "n0", "def")
	require.NoError(t, err)
	assert.Equal(t, before+1, provider.calls.Load())
}

func TestBreakerClientPassesThrough(t *testing.T) {
	provider := &countingClient{vecs: map[string][]float32{"x: y": {9}}}
	client := NewBreakerClient(provider, BreakerConfig{ReadyToTripRatio: 0.6}, nil)

	vec, err := client.EmbedSingle(context.Background(), "x: y")
	require.NoError(t, err)
	assert.Equal(t, []float32{9}, vec)
	assert.Equal(t, "test-model", client.Model())
}

func TestBreakerClientOpensAfterFailures(t *testing.T) {
	provider := &countingClient{err: errors.New("connection refused")}
	client := NewBreakerClient(provider, BreakerConfig{ReadyToTripRatio: 0.5}, nil)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := client.EmbedSingle(ctx, "text")
		require.Error(t, err)
	}

	// Breaker is now open; the provider stops being called.
	before := provider.calls.Load()
	_, err := client.EmbedSingle(ctx, "text")
	require.Error(t, err)
	assert.Equal(t, before, provider.calls.Load(), "open breaker must fail fast")
}
