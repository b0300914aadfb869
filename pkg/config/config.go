// Package config loads application configuration from file, environment
// variables, and defaults, in the usual viper precedence order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/soundprediction/semagraph/pkg/connector"
	"github.com/soundprediction/semagraph/pkg/embedding"
)

// Config holds all configuration for the application.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Search    SearchConfig    `mapstructure:"search"`
	Hub       HubConfig       `mapstructure:"hub"`
	Neo4j     connector.Config `mapstructure:"neo4j"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	CircuitBreaker embedding.BreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `mapstructure:"provider"` // ollama, openai
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	CacheSize int    `mapstructure:"cache_size"`
}

// SearchConfig holds matching configuration.
type SearchConfig struct {
	// Threshold is the minimum dot-product score a candidate must exceed
	// to count as a match.
	Threshold float64 `mapstructure:"threshold"`
}

// HubConfig holds broadcast hub configuration.
type HubConfig struct {
	// QueueSize is the per-subscriber event buffer; events beyond it are
	// dropped for that subscriber.
	QueueSize int `mapstructure:"queue_size"`
}

// TelemetryConfig holds telemetry configuration.
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)
	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("embedding.provider", "ollama")
	viper.SetDefault("embedding.model", "nomic-embed-text")
	viper.SetDefault("embedding.base_url", "")
	viper.SetDefault("embedding.cache_size", embedding.DefaultCacheSize)

	viper.SetDefault("search.threshold", 200.0)

	viper.SetDefault("hub.queue_size", 64)

	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.id_property", "uuid")
	viper.SetDefault("neo4j.label_property", "name")

	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables.
func overrideWithEnv(config *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Neo4j.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Neo4j.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Neo4j.Password = pass
	}
	if prop := os.Getenv("NEO4J_ID_PROPERTY"); prop != "" {
		config.Neo4j.IDProperty = prop
	}
	if prop := os.Getenv("NEO4J_LABEL_PROPERTY"); prop != "" {
		config.Neo4j.LabelProperty = prop
	}

	if url := os.Getenv("EMBEDDING_BASE_URL"); url != "" {
		config.Embedding.BaseURL = url
	}
	if model := os.Getenv("EMBEDDING_MODEL"); model != "" {
		config.Embedding.Model = model
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Embedding.APIKey = apiKey
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
