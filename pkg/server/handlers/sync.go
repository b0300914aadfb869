package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph"
	"github.com/soundprediction/semagraph/pkg/server/dto"
	"github.com/soundprediction/semagraph/pkg/types"
)

// GraphFetcher retrieves a full graph from an external store.
type GraphFetcher interface {
	FetchGraph(ctx context.Context) (*types.GraphSnapshot, error)
}

// SyncHandler handles import requests from an external graph database
type SyncHandler struct {
	graph   *semagraph.Graph
	fetcher GraphFetcher
}

// NewSyncHandler creates a new sync handler. The fetcher may be nil when
// no external database is configured.
func NewSyncHandler(g *semagraph.Graph, fetcher GraphFetcher) *SyncHandler {
	return &SyncHandler{graph: g, fetcher: fetcher}
}

// SyncNeo4j handles POST /sync-neo4j. It replaces the in-memory graph
// with the contents of the configured Neo4j database.
func (h *SyncHandler) SyncNeo4j(c *gin.Context) {
	if h.fetcher == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "sync_unavailable",
			Message: "no graph database configured",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	snap, err := h.fetcher.FetchGraph(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "sync_failed",
			Message: err.Error(),
			Code:    http.StatusBadGateway,
		})
		return
	}

	if err := h.graph.LoadSnapshot(snap); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{
		Success: true,
		Nodes:   len(snap.Nodes),
		Edges:   len(snap.Edges),
	})
}
