package semagraph

import (
	"context"
	"log/slog"
	"sync"

	"github.com/soundprediction/semagraph/pkg/hub"
	"github.com/soundprediction/semagraph/pkg/search"
	"github.com/soundprediction/semagraph/pkg/store"
	"github.com/soundprediction/semagraph/pkg/types"
)

// Graph wires the store, broadcast hub, and search orchestrator into the
// application facade. Each mutating method runs "mutate, snapshot,
// publish" as one mutual-exclusion unit: mu is held from the store
// operation through the broadcast, so subscribers observe snapshots in
// the same order the store serialized the mutations. Publish never
// blocks, so holding mu across it is safe.
type Graph struct {
	store        *store.GraphStore
	hub          *hub.Hub
	orchestrator *search.Orchestrator
	threshold    float64
	logger       *slog.Logger

	mu sync.Mutex // serializes mutate+publish pairs
}

// New creates a Graph facade. A threshold of zero or less falls back to
// search.DefaultThreshold.
func New(st *store.GraphStore, h *hub.Hub, orch *search.Orchestrator, threshold float64, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold <= 0 {
		threshold = search.DefaultThreshold
	}
	return &Graph{
		store:        st,
		hub:          h,
		orchestrator: orch,
		threshold:    threshold,
		logger:       logger,
	}
}

// Threshold returns the configured minimum match score.
func (g *Graph) Threshold() float64 { return g.threshold }

// Snapshot implements Reader.
func (g *Graph) Snapshot() *types.GraphSnapshot { return g.store.Snapshot() }

// GetNode implements Reader.
func (g *Graph) GetNode(id string) (types.Node, error) { return g.store.GetNode(id) }

// GetEdge implements Reader.
func (g *Graph) GetEdge(id string) (types.Edge, error) { return g.store.GetEdge(id) }

// mutate runs op and broadcasts the snapshot it returns while holding
// the mutation lock. Two mutations therefore publish in the same order
// the store serialized them; a rejected op publishes nothing.
func (g *Graph) mutate(op func() (*types.GraphSnapshot, error)) (*types.GraphSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, err := op()
	if err != nil {
		return nil, err
	}
	g.hub.Publish(types.GraphUpdate(snap))
	return snap, nil
}

// CreateNode implements Mutator.
func (g *Graph) CreateNode(node types.Node) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.CreateNode(node)
	}); err != nil {
		return err
	}
	g.logger.Debug("node created", "id", node.ID)
	return nil
}

// UpdateNode implements Mutator.
func (g *Graph) UpdateNode(id string, node types.Node) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.UpdateNode(id, node)
	}); err != nil {
		return err
	}
	g.logger.Debug("node updated", "id", id)
	return nil
}

// DeleteNode implements Mutator. Incident edges are removed as part of
// the same mutation and broadcast.
func (g *Graph) DeleteNode(id string) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.DeleteNode(id)
	}); err != nil {
		return err
	}
	g.logger.Debug("node deleted", "id", id)
	return nil
}

// CreateEdge implements Mutator.
func (g *Graph) CreateEdge(edge types.Edge) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.CreateEdge(edge)
	}); err != nil {
		return err
	}
	g.logger.Debug("edge created", "id", edge.ID)
	return nil
}

// UpdateEdge implements Mutator.
func (g *Graph) UpdateEdge(id string, edge types.Edge) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.UpdateEdge(id, edge)
	}); err != nil {
		return err
	}
	g.logger.Debug("edge updated", "id", id)
	return nil
}

// DeleteEdge implements Mutator.
func (g *Graph) DeleteEdge(id string) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.DeleteEdge(id)
	}); err != nil {
		return err
	}
	g.logger.Debug("edge deleted", "id", id)
	return nil
}

// SetProperties implements Mutator.
func (g *Graph) SetProperties(id string, props types.Properties) error {
	if _, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.SetProperties(id, props)
	}); err != nil {
		return err
	}
	g.logger.Debug("properties updated", "id", id)
	return nil
}

// LoadSnapshot implements Mutator.
func (g *Graph) LoadSnapshot(snap *types.GraphSnapshot) error {
	loaded, err := g.mutate(func() (*types.GraphSnapshot, error) {
		return g.store.BulkLoad(snap)
	})
	if err != nil {
		return err
	}
	g.logger.Info("graph loaded", "nodes", len(loaded.Nodes), "edges", len(loaded.Edges))
	return nil
}

// Search implements Searcher.
func (g *Graph) Search(ctx context.Context, query string) (string, float64, error) {
	return g.SearchIn(ctx, nil, query)
}

// SearchIn is Search against an explicit snapshot, for clients that ship
// their own graph with the query. A nil snapshot means the current state.
func (g *Graph) SearchIn(ctx context.Context, snap *types.GraphSnapshot, query string) (string, float64, error) {
	if snap == nil {
		snap = g.store.Snapshot()
	}
	return g.orchestrator.SearchQuery(ctx, snap, query, g.threshold)
}

// SearchAll implements Searcher.
func (g *Graph) SearchAll(ctx context.Context, objects []types.QueryObject, relations []types.QueryRelation) (*types.SearchResults, error) {
	return g.SearchAllIn(ctx, nil, objects, relations)
}

// SearchAllIn is SearchAll against an explicit snapshot. A nil snapshot
// means the current state.
func (g *Graph) SearchAllIn(ctx context.Context, snap *types.GraphSnapshot, objects []types.QueryObject, relations []types.QueryRelation) (*types.SearchResults, error) {
	if snap == nil {
		snap = g.store.Snapshot()
	}
	return g.orchestrator.SearchAll(ctx, snap, objects, relations, g.threshold)
}

// Subscribe implements Streamer.
func (g *Graph) Subscribe() *hub.Subscription { return g.hub.Subscribe() }

// Highlight implements Streamer.
func (g *Graph) Highlight(nodeIDs, edgeIDs []string) {
	g.hub.Publish(types.HighlightUpdate(nodeIDs, edgeIDs))
}

// SubscriberCount reports the number of active streaming subscribers.
func (g *Graph) SubscriberCount() int { return g.hub.SubscriberCount() }
