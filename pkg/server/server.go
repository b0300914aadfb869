// Package server exposes the graph over HTTP: CRUD and bulk-load routes,
// semantic search, and a server-sent-events stream of every broadcast.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph"
	"github.com/soundprediction/semagraph/pkg/config"
	"github.com/soundprediction/semagraph/pkg/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	router  *gin.Engine
	graph   *semagraph.Graph
	fetcher handlers.GraphFetcher
	server  *http.Server
}

// New creates a new server instance. The fetcher may be nil when no
// external graph database is configured; /sync-neo4j then returns 503.
func New(cfg *config.Config, graph *semagraph.Graph, fetcher handlers.GraphFetcher) *Server {
	return &Server{
		config:  cfg,
		graph:   graph,
		fetcher: fetcher,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	gin.SetMode(s.config.Server.Mode)

	s.router = gin.New()
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.graph)
	graphHandler := handlers.NewGraphHandler(s.graph)
	searchHandler := handlers.NewSearchHandler(s.graph)
	streamHandler := handlers.NewStreamHandler(s.graph)
	syncHandler := handlers.NewSyncHandler(s.graph, s.fetcher)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck)

	// Graph state and queries, matching the paths the web client calls
	s.router.GET("/graph", graphHandler.GetGraph)
	s.router.POST("/load-graph", graphHandler.LoadGraph)
	s.router.POST("/search", searchHandler.Search)
	s.router.POST("/searchAll", searchHandler.SearchAll)
	s.router.POST("/highlight", streamHandler.Highlight)
	s.router.POST("/sync-neo4j", syncHandler.SyncNeo4j)
	s.router.GET("/sse", streamHandler.Stream)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		nodes := v1.Group("/nodes")
		{
			nodes.POST("", graphHandler.CreateNode)
			nodes.GET("/:id", graphHandler.GetNode)
			nodes.PUT("/:id", graphHandler.UpdateNode)
			nodes.DELETE("/:id", graphHandler.DeleteNode)
		}

		edges := v1.Group("/edges")
		{
			edges.POST("", graphHandler.CreateEdge)
			edges.GET("/:id", graphHandler.GetEdge)
			edges.PUT("/:id", graphHandler.UpdateEdge)
			edges.DELETE("/:id", graphHandler.DeleteEdge)
		}

		v1.PUT("/properties/:id", graphHandler.SetProperties)
	}
}

// Start starts the server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
