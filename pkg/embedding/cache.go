package embedding

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the cache when no capacity is configured.
const DefaultCacheSize = 1000

// CacheKey builds the canonical cache key for an entity's embedding text.
// The same string is what gets sent to the provider.
func CacheKey(entityID, definition string) string {
	return fmt.Sprintf("%s: %s", entityID, definition)
}

// Cache memoizes text-to-vector lookups against a provider. Entries are
// evicted least-recently-used once the configured capacity is exceeded.
// Vectors are never mutated once stored.
type Cache struct {
	client Client
	lru    *lru.Cache[string, []float32]
}

// NewCache creates a Cache over the given client. A size of zero or less
// falls back to DefaultCacheSize.
func NewCache(client Client, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	l, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return &Cache{client: client, lru: l}, nil
}

// GetOrCompute returns the embedding for the entity's definition text.
//
// An empty definition returns (nil, nil) without calling the provider: an
// entity with no text cannot be embedded. Provider failures propagate and
// are never cached, so a transient upstream error cannot poison later
// lookups. Concurrent misses for the same key may each call the provider;
// duplicate work is cheaper than serializing lookups here.
func (c *Cache) GetOrCompute(ctx context.Context, entityID, definition string) ([]float32, error) {
	if definition == "" {
		return nil, nil
	}
	return c.GetOrComputeText(ctx, CacheKey(entityID, definition))
}

// GetOrComputeText is GetOrCompute for callers that already hold the full
// embedding text, e.g. a raw query string. Empty text returns (nil, nil).
func (c *Cache) GetOrComputeText(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}

	if vec, ok := c.lru.Get(text); ok {
		return vec, nil
	}

	vec, err := c.client.EmbedSingle(ctx, text)
	if err != nil {
		return nil, err
	}
	c.lru.Add(text, vec)
	return vec, nil
}

// Len returns the number of cached vectors.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every cached vector.
func (c *Cache) Purge() { c.lru.Purge() }
