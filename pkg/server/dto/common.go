package dto

import (
	"errors"
	"strings"

	"github.com/soundprediction/semagraph/pkg/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// NodeRequest is the payload for node create/update.
type NodeRequest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ToNode converts the request to a graph node.
func (r *NodeRequest) ToNode() types.Node {
	return types.Node{ID: r.ID, Label: r.Label}
}

// Validate performs validation on NodeRequest
func (r *NodeRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	return nil
}

// EdgeRequest is the payload for edge create/update.
type EdgeRequest struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// ToEdge converts the request to a graph edge.
func (r *EdgeRequest) ToEdge() types.Edge {
	return types.Edge{ID: r.ID, Source: r.Source, Target: r.Target, Label: r.Label}
}

// Validate performs validation on EdgeRequest
func (r *EdgeRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(r.Source) == "" {
		return errors.New("source is required")
	}
	if strings.TrimSpace(r.Target) == "" {
		return errors.New("target is required")
	}
	return nil
}

// PropertiesRequest is the payload for setting an entity's attribute bag.
type PropertiesRequest struct {
	Properties types.Properties `json:"properties"`
}

// LoadGraphRequest atomically replaces the whole graph.
type LoadGraphRequest struct {
	Nodes      []types.Node      `json:"nodes"`
	Edges      []types.Edge      `json:"edges"`
	Properties types.PropertyMap `json:"allValues"`
}

// ToSnapshot converts the request to a graph snapshot.
func (r *LoadGraphRequest) ToSnapshot() *types.GraphSnapshot {
	return &types.GraphSnapshot{Nodes: r.Nodes, Edges: r.Edges, Properties: r.Properties}
}
