package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadClean(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadClean(t)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, 200.0, cfg.Search.Threshold)
	assert.Equal(t, 64, cfg.Hub.QueueSize)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "uuid", cfg.Neo4j.IDProperty)
	assert.Equal(t, "name", cfg.Neo4j.LabelProperty)
	assert.True(t, cfg.CircuitBreaker.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://graph.internal:7687")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("EMBEDDING_MODEL", "all-minilm")
	t.Setenv("SERVER_PORT", "9001")

	cfg := loadClean(t)

	assert.Equal(t, "bolt://graph.internal:7687", cfg.Neo4j.URI)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
	assert.Equal(t, "all-minilm", cfg.Embedding.Model)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestEnvOverrideIgnoresBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg := loadClean(t)
	assert.Equal(t, 8000, cfg.Server.Port)
}
