package semagraph

import (
	"context"

	"github.com/soundprediction/semagraph/pkg/hub"
	"github.com/soundprediction/semagraph/pkg/types"
)

// This file defines focused interfaces so consumers can depend on the
// smallest surface that meets their needs. The Graph facade satisfies all
// of them.

// Reader provides read-only access to the graph.
type Reader interface {
	// Snapshot returns an immutable copy of the current graph state.
	Snapshot() *types.GraphSnapshot

	// GetNode retrieves a node by id.
	GetNode(id string) (types.Node, error)

	// GetEdge retrieves an edge by id.
	GetEdge(id string) (types.Edge, error)
}

// Mutator provides write operations on the graph. Every successful
// mutation broadcasts one graph_update event with the resulting snapshot.
type Mutator interface {
	CreateNode(node types.Node) error
	UpdateNode(id string, node types.Node) error
	DeleteNode(id string) error
	CreateEdge(edge types.Edge) error
	UpdateEdge(id string, edge types.Edge) error
	DeleteEdge(id string) error
	SetProperties(id string, props types.Properties) error

	// LoadSnapshot atomically replaces the entire graph.
	LoadSnapshot(snap *types.GraphSnapshot) error
}

// Searcher provides semantic queries against the graph. Queries do not
// mutate and do not broadcast.
type Searcher interface {
	// Search returns the id of the entity most relevant to a raw query
	// string, with its score.
	Search(ctx context.Context, query string) (string, float64, error)

	// SearchAll expands a batch of query objects and relations into a
	// connected subgraph.
	SearchAll(ctx context.Context, objects []types.QueryObject, relations []types.QueryRelation) (*types.SearchResults, error)
}

// Streamer provides real-time observation of the graph.
type Streamer interface {
	// Subscribe registers a new event subscriber.
	Subscribe() *hub.Subscription

	// Highlight broadcasts a highlight_update event without touching
	// the store.
	Highlight(nodeIDs, edgeIDs []string)
}

// Compile-time check that Graph composes all focused interfaces.
var _ interface {
	Reader
	Mutator
	Searcher
	Streamer
} = (*Graph)(nil)
