package semagraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/semagraph"
	"github.com/soundprediction/semagraph/pkg/config"
	"github.com/soundprediction/semagraph/pkg/connector"
	"github.com/soundprediction/semagraph/pkg/embedding"
	"github.com/soundprediction/semagraph/pkg/hub"
	semagraphLogger "github.com/soundprediction/semagraph/pkg/logger"
	"github.com/soundprediction/semagraph/pkg/search"
	"github.com/soundprediction/semagraph/pkg/server"
	"github.com/soundprediction/semagraph/pkg/server/handlers"
	"github.com/soundprediction/semagraph/pkg/store"
	"github.com/soundprediction/semagraph/pkg/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the semagraph HTTP server",
	Long: `Start the semagraph HTTP server.

The server provides endpoints for:
- Reading and mutating the in-memory graph
- Bulk-loading a full graph, or importing one from Neo4j
- Resolving free-text queries with embedding similarity
- Streaming every change to clients over server-sent events

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8000, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Embedding flags
	serverCmd.Flags().String("embedding-provider", "ollama", "Embedding provider (ollama, openai)")
	serverCmd.Flags().String("embedding-model", "nomic-embed-text", "Embedding model")
	serverCmd.Flags().String("embedding-api-key", "", "Embedding API key (openai)")
	serverCmd.Flags().String("embedding-base-url", "", "Embedding base URL")
	serverCmd.Flags().Float64("threshold", 200, "Minimum similarity score for a match")

	// Neo4j flags
	serverCmd.Flags().String("neo4j-uri", "", "Neo4j URI; enables /sync-neo4j when set")
	serverCmd.Flags().String("neo4j-user", "", "Neo4j username")
	serverCmd.Flags().String("neo4j-password", "", "Neo4j password")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for error telemetry")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrideConfigWithFlags(cmd, cfg)

	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, flush, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer flush()

	graph, cleanup, err := initializeGraph(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize graph: %w", err)
	}
	defer cleanup()

	fetcher, closeFetcher := initializeFetcher(cfg, logger)
	defer closeFetcher()

	srv := server.New(cfg, graph, fetcher)
	srv.Setup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", "host", cfg.Server.Host, "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		logger.Info("server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Embedding flags
	if cmd.Flags().Changed("embedding-provider") {
		cfg.Embedding.Provider, _ = cmd.Flags().GetString("embedding-provider")
	}
	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}
	if cmd.Flags().Changed("embedding-api-key") {
		cfg.Embedding.APIKey, _ = cmd.Flags().GetString("embedding-api-key")
	}
	if cmd.Flags().Changed("embedding-base-url") {
		cfg.Embedding.BaseURL, _ = cmd.Flags().GetString("embedding-base-url")
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Search.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}

	// Neo4j flags
	if cmd.Flags().Changed("neo4j-uri") {
		cfg.Neo4j.URI, _ = cmd.Flags().GetString("neo4j-uri")
	}
	if cmd.Flags().Changed("neo4j-user") {
		cfg.Neo4j.Username, _ = cmd.Flags().GetString("neo4j-user")
	}
	if cmd.Flags().Changed("neo4j-password") {
		cfg.Neo4j.Password, _ = cmd.Flags().GetString("neo4j-password")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	switch cfg.Embedding.Provider {
	case "ollama":
	case "openai":
		if cfg.Embedding.APIKey == "" {
			return fmt.Errorf("openai embedding provider requires an API key")
		}
	default:
		return fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
	return nil
}

// buildLogger constructs the application logger, chaining the parquet
// error-tracking handler in front of it when a telemetry path is set. The
// returned flush func writes any buffered error records on shutdown.
func buildLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	logger := semagraphLogger.New(cfg.Log.Level, cfg.Log.Format)
	flush := func() {}

	if cfg.Telemetry.ParquetPath == "" {
		return logger, flush, nil
	}

	if err := os.MkdirAll(cfg.Telemetry.ParquetPath, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	parquetHandler, err := telemetry.NewParquetHandler(logger.Handler(), cfg.Telemetry.ParquetPath)
	if err != nil {
		logger.Warn("failed to initialize error tracking", "error", err)
		return logger, flush, nil
	}

	logger = slog.New(parquetHandler)
	flush = func() {
		if err := parquetHandler.Flush(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to flush telemetry:", err)
		}
	}
	logger.Info("error tracking enabled", "path", cfg.Telemetry.ParquetPath)
	return logger, flush, nil
}

func initializeGraph(cfg *config.Config, logger *slog.Logger) (*semagraph.Graph, func(), error) {
	var client embedding.Client
	switch cfg.Embedding.Provider {
	case "ollama":
		client = embedding.NewOllamaClient(cfg.Embedding.BaseURL, cfg.Embedding.Model)
	case "openai":
		client = embedding.NewOpenAIClient(embedding.Config{
			Provider: cfg.Embedding.Provider,
			Model:    cfg.Embedding.Model,
			BaseURL:  cfg.Embedding.BaseURL,
			APIKey:   cfg.Embedding.APIKey,
		})
	default:
		return nil, nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}

	if cfg.CircuitBreaker.Enabled {
		client = embedding.NewBreakerClient(client, cfg.CircuitBreaker, logger)
	}

	cache, err := embedding.NewCache(client, cfg.Embedding.CacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}

	graph := semagraph.New(
		store.New(),
		hub.New(logger, cfg.Hub.QueueSize),
		search.NewOrchestrator(cache, logger),
		cfg.Search.Threshold,
		logger,
	)

	logger.Info("graph initialized",
		"embedding_provider", cfg.Embedding.Provider,
		"embedding_model", cfg.Embedding.Model,
		"threshold", cfg.Search.Threshold)

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close embedding client", "error", err)
		}
	}
	return graph, cleanup, nil
}

// initializeFetcher connects to Neo4j when credentials are configured.
// A failed connection disables /sync-neo4j rather than aborting startup.
func initializeFetcher(cfg *config.Config, logger *slog.Logger) (handlers.GraphFetcher, func()) {
	noop := func() {}
	if cfg.Neo4j.URI == "" || cfg.Neo4j.Password == "" {
		return nil, noop
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := connector.New(ctx, cfg.Neo4j)
	if err != nil {
		logger.Warn("neo4j unavailable, /sync-neo4j disabled", "uri", cfg.Neo4j.URI, "error", err)
		return nil, noop
	}

	logger.Info("neo4j connected", "uri", cfg.Neo4j.URI)
	return conn, func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := conn.Close(closeCtx); err != nil {
			logger.Warn("failed to close neo4j driver", "error", err)
		}
	}
}
