package store

import (
	"maps"
	"sync"

	"github.com/soundprediction/semagraph/pkg/types"
)

// GraphStore is the in-memory property graph. Nodes and edges keep
// insertion order; id lookups go through index maps. The zero value is not
// usable, use New.
type GraphStore struct {
	mu sync.RWMutex

	nodes     []types.Node
	edges     []types.Edge
	props     types.PropertyMap
	nodeIndex map[string]int
	edgeIndex map[string]int
}

// New creates an empty GraphStore.
func New() *GraphStore {
	return &GraphStore{
		props:     types.PropertyMap{},
		nodeIndex: map[string]int{},
		edgeIndex: map[string]int{},
	}
}

// CreateNode appends a new node. It fails with a DuplicateIDError if the id
// is already taken by a node or an edge. Returns the post-mutation snapshot.
func (s *GraphStore) CreateNode(node types.Node) (*types.GraphSnapshot, error) {
	if err := node.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idExistsLocked(node.ID) {
		return nil, &types.DuplicateIDError{Kind: "node", ID: node.ID}
	}
	s.nodes = append(s.nodes, node)
	s.nodeIndex[node.ID] = len(s.nodes) - 1
	return s.snapshotLocked(), nil
}

// UpdateNode replaces the node with the given id in place, preserving its
// position. The node's id cannot be changed through an update.
func (s *GraphStore) UpdateNode(id string, node types.Node) (*types.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.nodeIndex[id]
	if !ok {
		return nil, &types.NotFoundError{Kind: "node", ID: id}
	}
	node.ID = id
	s.nodes[i] = node
	return s.snapshotLocked(), nil
}

// DeleteNode removes the node and, as a cascade, every edge referencing it
// as source or target, plus the properties of everything removed. The whole
// removal is atomic with respect to concurrent readers.
func (s *GraphStore) DeleteNode(id string) (*types.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodeIndex[id]; !ok {
		return nil, &types.NotFoundError{Kind: "node", ID: id}
	}

	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.nodes = kept
	delete(s.props, id)

	keptEdges := s.edges[:0]
	for _, e := range s.edges {
		if e.Source == id || e.Target == id {
			delete(s.props, e.ID)
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	s.edges = keptEdges

	s.reindexLocked()
	return s.snapshotLocked(), nil
}

// CreateEdge appends a new edge after validating that both endpoints name
// existing nodes.
func (s *GraphStore) CreateEdge(edge types.Edge) (*types.GraphSnapshot, error) {
	if err := edge.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idExistsLocked(edge.ID) {
		return nil, &types.DuplicateIDError{Kind: "edge", ID: edge.ID}
	}
	if _, ok := s.nodeIndex[edge.Source]; !ok {
		return nil, &types.DanglingReferenceError{EdgeID: edge.ID, NodeID: edge.Source}
	}
	if _, ok := s.nodeIndex[edge.Target]; !ok {
		return nil, &types.DanglingReferenceError{EdgeID: edge.ID, NodeID: edge.Target}
	}
	s.edges = append(s.edges, edge)
	s.edgeIndex[edge.ID] = len(s.edges) - 1
	return s.snapshotLocked(), nil
}

// UpdateEdge replaces the edge with the given id in place. The replacement's
// endpoints must also name existing nodes.
func (s *GraphStore) UpdateEdge(id string, edge types.Edge) (*types.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.edgeIndex[id]
	if !ok {
		return nil, &types.NotFoundError{Kind: "edge", ID: id}
	}
	edge.ID = id
	if _, ok := s.nodeIndex[edge.Source]; !ok {
		return nil, &types.DanglingReferenceError{EdgeID: id, NodeID: edge.Source}
	}
	if _, ok := s.nodeIndex[edge.Target]; !ok {
		return nil, &types.DanglingReferenceError{EdgeID: id, NodeID: edge.Target}
	}
	s.edges[i] = edge
	return s.snapshotLocked(), nil
}

// DeleteEdge removes the edge and its properties.
func (s *GraphStore) DeleteEdge(id string) (*types.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.edgeIndex[id]
	if !ok {
		return nil, &types.NotFoundError{Kind: "edge", ID: id}
	}
	s.edges = append(s.edges[:i], s.edges[i+1:]...)
	delete(s.props, id)
	s.reindexLocked()
	return s.snapshotLocked(), nil
}

// GetNode returns a copy of the node with the given id.
func (s *GraphStore) GetNode(id string) (types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.nodeIndex[id]
	if !ok {
		return types.Node{}, &types.NotFoundError{Kind: "node", ID: id}
	}
	return s.nodes[i], nil
}

// GetEdge returns a copy of the edge with the given id.
func (s *GraphStore) GetEdge(id string) (types.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.edgeIndex[id]
	if !ok {
		return types.Edge{}, &types.NotFoundError{Kind: "edge", ID: id}
	}
	return s.edges[i], nil
}

// SetProperties replaces the attribute bag of an existing node or edge.
func (s *GraphStore) SetProperties(id string, props types.Properties) (*types.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.idExistsLocked(id) {
		return nil, &types.NotFoundError{Kind: "entity", ID: id}
	}
	s.props[id] = maps.Clone(props)
	return s.snapshotLocked(), nil
}

// Snapshot returns a deep copy of the current graph state. It never
// reflects partial effects of an in-flight mutation.
func (s *GraphStore) Snapshot() *types.GraphSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// BulkLoad atomically replaces the entire store contents with the given
// snapshot, used by full-graph import and sync. The input is copied, so the
// caller keeps ownership of its slices and maps.
func (s *GraphStore) BulkLoad(snap *types.GraphSnapshot) (*types.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(snap.Nodes)+len(snap.Edges))
	for i := range snap.Nodes {
		if err := snap.Nodes[i].Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[snap.Nodes[i].ID]; ok {
			return nil, &types.DuplicateIDError{Kind: "node", ID: snap.Nodes[i].ID}
		}
		seen[snap.Nodes[i].ID] = struct{}{}
	}
	for i := range snap.Edges {
		e := &snap.Edges[i]
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[e.ID]; ok {
			return nil, &types.DuplicateIDError{Kind: "edge", ID: e.ID}
		}
		seen[e.ID] = struct{}{}
	}
	nodeIDs := make(map[string]struct{}, len(snap.Nodes))
	for i := range snap.Nodes {
		nodeIDs[snap.Nodes[i].ID] = struct{}{}
	}
	for i := range snap.Edges {
		e := &snap.Edges[i]
		if _, ok := nodeIDs[e.Source]; !ok {
			return nil, &types.DanglingReferenceError{EdgeID: e.ID, NodeID: e.Source}
		}
		if _, ok := nodeIDs[e.Target]; !ok {
			return nil, &types.DanglingReferenceError{EdgeID: e.ID, NodeID: e.Target}
		}
	}

	nodes := make([]types.Node, len(snap.Nodes))
	copy(nodes, snap.Nodes)
	edges := make([]types.Edge, len(snap.Edges))
	copy(edges, snap.Edges)
	props := make(types.PropertyMap, len(snap.Properties))
	for id, p := range snap.Properties {
		props[id] = maps.Clone(p)
	}

	s.nodes = nodes
	s.edges = edges
	s.props = props
	s.reindexLocked()
	return s.snapshotLocked(), nil
}

// snapshotLocked deep-copies the current state. Caller must hold at least a
// read lock.
func (s *GraphStore) snapshotLocked() *types.GraphSnapshot {
	snap := &types.GraphSnapshot{
		Nodes:      make([]types.Node, len(s.nodes)),
		Edges:      make([]types.Edge, len(s.edges)),
		Properties: make(types.PropertyMap, len(s.props)),
	}
	copy(snap.Nodes, s.nodes)
	copy(snap.Edges, s.edges)
	for id, p := range s.props {
		snap.Properties[id] = maps.Clone(p)
	}
	return snap
}

// idExistsLocked reports whether the id is taken by a node or an edge.
// Ids are unique across both, per the snapshot contract.
func (s *GraphStore) idExistsLocked(id string) bool {
	if _, ok := s.nodeIndex[id]; ok {
		return true
	}
	_, ok := s.edgeIndex[id]
	return ok
}

// reindexLocked rebuilds the id indexes after a removal or bulk replace.
func (s *GraphStore) reindexLocked() {
	s.nodeIndex = make(map[string]int, len(s.nodes))
	for i, n := range s.nodes {
		s.nodeIndex[n.ID] = i
	}
	s.edgeIndex = make(map[string]int, len(s.edges))
	for i, e := range s.edges {
		s.edgeIndex[e.ID] = i
	}
}
