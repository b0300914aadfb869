package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/semagraph"
	"github.com/soundprediction/semagraph/pkg/server/dto"
	"github.com/soundprediction/semagraph/pkg/types"
)

// StreamHandler handles server-sent event streaming and highlight requests
type StreamHandler struct {
	graph *semagraph.Graph
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(g *semagraph.Graph) *StreamHandler {
	return &StreamHandler{graph: g}
}

// Stream handles GET /sse. The client first receives a graph_update event
// with the current snapshot, then every broadcast until it disconnects.
// There is no replay: events published before the subscription are gone.
func (h *StreamHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	sub := h.graph.Subscribe()
	defer sub.Close()

	c.SSEvent(string(types.GraphUpdateEventType), h.graph.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			switch ev.Type {
			case types.GraphUpdateEventType:
				c.SSEvent(string(ev.Type), ev.Snapshot)
			case types.HighlightUpdateEventType:
				c.SSEvent(string(ev.Type), ev.Highlight)
			}
			c.Writer.Flush()
		}
	}
}

// Highlight handles POST /highlight
func (h *StreamHandler) Highlight(c *gin.Context) {
	var req dto.HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, err.Error())
		return
	}

	h.graph.Highlight(req.NodeIDs, req.EdgeIDs)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
