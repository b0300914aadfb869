package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph"
	"github.com/soundprediction/semagraph/pkg/server/dto"
	"github.com/soundprediction/semagraph/pkg/types"
)

// SearchHandler handles semantic query requests
type SearchHandler struct {
	graph *semagraph.Graph
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(g *semagraph.Graph) *SearchHandler {
	return &SearchHandler{graph: g}
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	var snap *types.GraphSnapshot
	if req.GraphData != nil {
		snap = req.GraphData.ToSnapshot()
	}

	id, score, err := h.graph.SearchIn(c.Request.Context(), snap, req.Query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{MostRelevantID: id, Score: score})
}

// SearchAll handles POST /searchAll
func (h *SearchHandler) SearchAll(c *gin.Context) {
	var req dto.SearchAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	var snap *types.GraphSnapshot
	if req.GraphData != nil {
		snap = req.GraphData.ToSnapshot()
	}

	objects, relations := req.Normalized()
	results, err := h.graph.SearchAllIn(c.Request.Context(), snap, objects, relations)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
