package embedding

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig holds circuit breaker tuning for the embedding provider.
type BreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// BreakerClient wraps a Client with circuit breaking so a dead provider
// fails fast instead of timing out every candidate scan.
type BreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
}

// NewBreakerClient creates a circuit-breaking wrapper around client.
func NewBreakerClient(client Client, cfg BreakerConfig, logger *slog.Logger) *BreakerClient {
	if logger == nil {
		logger = slog.Default()
	}

	ratio := cfg.ReadyToTripRatio
	if ratio <= 0 {
		ratio = 0.6
	}

	st := gobreaker.Settings{
		Name:        "embedding-provider",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= ratio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(st),
	}
}

// EmbedSingle implements Client.
func (c *BreakerClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.EmbedSingle(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return result.([]float32), nil
}

// Model implements Client.
func (c *BreakerClient) Model() string { return c.client.Model() }

// Close implements Client.
func (c *BreakerClient) Close() error { return c.client.Close() }
