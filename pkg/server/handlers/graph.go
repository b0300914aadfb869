package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph"
	"github.com/soundprediction/semagraph/pkg/server/dto"
)

// GraphHandler handles graph state and CRUD requests
type GraphHandler struct {
	graph *semagraph.Graph
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(g *semagraph.Graph) *GraphHandler {
	return &GraphHandler{graph: g}
}

// GetGraph handles GET /graph
func (h *GraphHandler) GetGraph(c *gin.Context) {
	c.JSON(http.StatusOK, h.graph.Snapshot())
}

// LoadGraph handles POST /load-graph
func (h *GraphHandler) LoadGraph(c *gin.Context) {
	var req dto.LoadGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	if err := h.graph.LoadSnapshot(req.ToSnapshot()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.graph.Snapshot())
}

// CreateNode handles POST /api/v1/nodes
func (h *GraphHandler) CreateNode(c *gin.Context) {
	var req dto.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	if err := h.graph.CreateNode(req.ToNode()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.graph.Snapshot())
}

// GetNode handles GET /api/v1/nodes/:id
func (h *GraphHandler) GetNode(c *gin.Context) {
	node, err := h.graph.GetNode(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, node)
}

// UpdateNode handles PUT /api/v1/nodes/:id
func (h *GraphHandler) UpdateNode(c *gin.Context) {
	var req dto.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	if req.ID == "" {
		req.ID = c.Param("id")
	}

	if err := h.graph.UpdateNode(c.Param("id"), req.ToNode()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.graph.Snapshot())
}

// DeleteNode handles DELETE /api/v1/nodes/:id
func (h *GraphHandler) DeleteNode(c *gin.Context) {
	if err := h.graph.DeleteNode(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.graph.Snapshot())
}

// CreateEdge handles POST /api/v1/edges
func (h *GraphHandler) CreateEdge(c *gin.Context) {
	var req dto.EdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	if err := h.graph.CreateEdge(req.ToEdge()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.graph.Snapshot())
}

// GetEdge handles GET /api/v1/edges/:id
func (h *GraphHandler) GetEdge(c *gin.Context) {
	edge, err := h.graph.GetEdge(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, edge)
}

// UpdateEdge handles PUT /api/v1/edges/:id
func (h *GraphHandler) UpdateEdge(c *gin.Context) {
	var req dto.EdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	if req.ID == "" {
		req.ID = c.Param("id")
	}

	if err := h.graph.UpdateEdge(c.Param("id"), req.ToEdge()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.graph.Snapshot())
}

// DeleteEdge handles DELETE /api/v1/edges/:id
func (h *GraphHandler) DeleteEdge(c *gin.Context) {
	if err := h.graph.DeleteEdge(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.graph.Snapshot())
}

// SetProperties handles PUT /api/v1/properties/:id
func (h *GraphHandler) SetProperties(c *gin.Context) {
	var req dto.PropertiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	if err := h.graph.SetProperties(c.Param("id"), req.Properties); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.graph.Snapshot())
}
