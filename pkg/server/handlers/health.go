package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	graph *semagraph.Graph
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(g *semagraph.Graph) *HealthHandler {
	return &HealthHandler{graph: g}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "semagraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "semagraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ready",
		"service":   "semagraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}
	checks := response["checks"].(gin.H)

	if h.graph == nil {
		checks["graph"] = gin.H{
			"status": "unhealthy",
			"error":  "graph not initialized",
		}
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	snap := h.graph.Snapshot()
	checks["graph"] = gin.H{
		"status":      "healthy",
		"nodes":       len(snap.Nodes),
		"edges":       len(snap.Edges),
		"subscribers": h.graph.SubscriberCount(),
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["system"] = gin.H{
		"status":     "healthy",
		"goroutines": runtime.NumGoroutine(),
		"heap_bytes": m.Alloc,
	}

	c.JSON(http.StatusOK, response)
}
