package types

import "errors"

// Validation errors
var (
	ErrEmptyID     = errors.New("id cannot be empty")
	ErrEmptySource = errors.New("source cannot be empty")
	ErrEmptyTarget = errors.New("target cannot be empty")
	ErrEmptyQuery  = errors.New("query cannot be empty")
)

// Node represents a node in the property graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Validate checks if the Node has all required fields set.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	return nil
}

// Edge represents a directed edge between two nodes.
// Source and Target must reference existing node ids at the moment the
// edge is accepted by the store.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Validate checks if the Edge has all required fields set.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.Source == "" {
		return ErrEmptySource
	}
	if e.Target == "" {
		return ErrEmptyTarget
	}
	return nil
}

// Properties is the open-ended attribute bag attached to a node or edge.
// The "definition" key, when present, holds the free text used to compute
// the entity's embedding.
type Properties map[string]interface{}

// Definition returns the definition string, or "" when absent or not a string.
func (p Properties) Definition() string {
	if p == nil {
		return ""
	}
	if s, ok := p["definition"].(string); ok {
		return s
	}
	return ""
}

// PropertyMap maps an entity id (node or edge) to its Properties.
type PropertyMap map[string]Properties

// GraphSnapshot is an immutable point-in-time copy of the graph.
// Nodes and Edges keep insertion order; the order is not semantically
// significant but is stable across snapshots of the same state.
type GraphSnapshot struct {
	Nodes      []Node      `json:"nodes"`
	Edges      []Edge      `json:"edges"`
	Properties PropertyMap `json:"allValues"`
}

// NodeIDs returns the set of node ids in the snapshot.
func (s *GraphSnapshot) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// EdgeIDs returns the set of edge ids in the snapshot.
func (s *GraphSnapshot) EdgeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Edges))
	for _, e := range s.Edges {
		ids[e.ID] = struct{}{}
	}
	return ids
}

// FindEdge returns the edge with the given id, or nil if absent.
func (s *GraphSnapshot) FindEdge(id string) *Edge {
	for i := range s.Edges {
		if s.Edges[i].ID == id {
			return &s.Edges[i]
		}
	}
	return nil
}

// QueryObject is a transient free-text description of an entity to look
// for in the graph. It exists only for the duration of one search call.
type QueryObject struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	Definition string            `json:"definition"`
	Context    string            `json:"context"`
}

// QueryRelation is a transient free-text description of a relationship to
// look for in the graph.
type QueryRelation struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	Definition string `json:"definition"`
	Context    string `json:"context"`
}

// Link records a matched entity together with its not-yet-matched direct
// neighbors. Exactly one of Node or Edge is set.
type Link struct {
	Node      string   `json:"node,omitempty"`
	Edge      string   `json:"edge,omitempty"`
	Neighbors []string `json:"neighbors"`
}

// SearchResults holds the connected subgraph produced by a batch search.
type SearchResults struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Links []Link `json:"links"`
}

// EmptySearchResults returns a SearchResults with non-nil empty slices,
// so JSON encodes arrays rather than nulls.
func EmptySearchResults() *SearchResults {
	return &SearchResults{Nodes: []Node{}, Edges: []Edge{}, Links: []Link{}}
}
