package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/semagraph/pkg/types"
)

func seedStore(t *testing.T) *GraphStore {
	t.Helper()
	s := New()

	_, err := s.CreateNode(types.Node{ID: "1", Label: "Node 1"})
	require.NoError(t, err)
	_, err = s.CreateNode(types.Node{ID: "2", Label: "Node 2"})
	require.NoError(t, err)
	_, err = s.CreateNode(types.Node{ID: "3", Label: "Node 3"})
	require.NoError(t, err)
	_, err = s.CreateEdge(types.Edge{ID: "e1", Source: "1", Target: "2", Label: "Edge 1"})
	require.NoError(t, err)
	_, err = s.CreateEdge(types.Edge{ID: "e2", Source: "2", Target: "3", Label: "Edge 2"})
	require.NoError(t, err)
	_, err = s.SetProperties("1", types.Properties{"definition": "Definition 1"})
	require.NoError(t, err)
	return s
}

func TestCreateNodeDuplicate(t *testing.T) {
	s := seedStore(t)

	_, err := s.CreateNode(types.Node{ID: "1", Label: "again"})
	assert.ErrorIs(t, err, types.ErrDuplicateID)

	// Edge ids share the namespace.
	_, err = s.CreateNode(types.Node{ID: "e1", Label: "edge id"})
	assert.ErrorIs(t, err, types.ErrDuplicateID)
}

func TestCreateNodeInvalid(t *testing.T) {
	s := New()
	_, err := s.CreateNode(types.Node{Label: "no id"})
	assert.ErrorIs(t, err, types.ErrEmptyID)
}

func TestUpdateNode(t *testing.T) {
	s := seedStore(t)

	snap, err := s.UpdateNode("2", types.Node{Label: "renamed"})
	require.NoError(t, err)

	// Position and id preserved.
	assert.Equal(t, "2", snap.Nodes[1].ID)
	assert.Equal(t, "renamed", snap.Nodes[1].Label)

	_, err = s.UpdateNode("missing", types.Node{Label: "x"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteNodeCascades(t *testing.T) {
	s := seedStore(t)

	snap, err := s.DeleteNode("2")
	require.NoError(t, err)

	// Node 2 and both incident edges are gone, nothing else.
	assert.Len(t, snap.Nodes, 2)
	assert.Empty(t, snap.Edges)
	_, ok := snap.Properties["e1"]
	assert.False(t, ok, "cascaded edge properties should be removed")
	_, ok = snap.Properties["1"]
	assert.True(t, ok, "unrelated properties must survive")

	_, err = s.GetEdge("e1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteNodeKeepsUnrelatedEdges(t *testing.T) {
	s := seedStore(t)

	snap, err := s.DeleteNode("1")
	require.NoError(t, err)

	require.Len(t, snap.Edges, 1)
	assert.Equal(t, "e2", snap.Edges[0].ID)
}

func TestDeleteNodeNotFound(t *testing.T) {
	s := seedStore(t)
	_, err := s.DeleteNode("missing")

	var nf *types.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "node", nf.Kind)
}

func TestCreateEdgeDanglingReference(t *testing.T) {
	s := seedStore(t)

	_, err := s.CreateEdge(types.Edge{ID: "e3", Source: "1", Target: "nope"})
	var dangling *types.DanglingReferenceError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, "nope", dangling.NodeID)

	_, err = s.CreateEdge(types.Edge{ID: "e3", Source: "nope", Target: "1"})
	assert.ErrorIs(t, err, types.ErrDanglingReference)

	// Both endpoints present: accepted.
	_, err = s.CreateEdge(types.Edge{ID: "e3", Source: "3", Target: "1"})
	assert.NoError(t, err)
}

func TestRejectedMutationLeavesStoreUnchanged(t *testing.T) {
	s := seedStore(t)
	before := s.Snapshot()

	_, err := s.CreateEdge(types.Edge{ID: "e9", Source: "1", Target: "missing"})
	require.Error(t, err)

	assert.Equal(t, before, s.Snapshot())
}

func TestUpdateAndDeleteEdge(t *testing.T) {
	s := seedStore(t)

	snap, err := s.UpdateEdge("e1", types.Edge{Source: "2", Target: "1", Label: "reversed"})
	require.NoError(t, err)
	assert.Equal(t, "e1", snap.Edges[0].ID)
	assert.Equal(t, "reversed", snap.Edges[0].Label)

	_, err = s.UpdateEdge("e1", types.Edge{Source: "2", Target: "missing"})
	assert.ErrorIs(t, err, types.ErrDanglingReference)

	snap, err = s.DeleteEdge("e1")
	require.NoError(t, err)
	require.Len(t, snap.Edges, 1)

	_, err = s.DeleteEdge("e1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSnapshotIsolation(t *testing.T) {
	s := seedStore(t)

	snap := s.Snapshot()
	snap.Nodes[0].Label = "mutated copy"
	snap.Properties["1"]["definition"] = "mutated copy"

	fresh := s.Snapshot()
	assert.Equal(t, "Node 1", fresh.Nodes[0].Label)
	assert.Equal(t, "Definition 1", fresh.Properties["1"].Definition())
}

func TestSnapshotInsertionOrder(t *testing.T) {
	s := seedStore(t)
	snap := s.Snapshot()

	var ids []string
	for _, n := range snap.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestBulkLoadReplacesEverything(t *testing.T) {
	s := seedStore(t)

	incoming := &types.GraphSnapshot{
		Nodes:      []types.Node{{ID: "a", Label: "A"}},
		Edges:      []types.Edge{},
		Properties: types.PropertyMap{"a": {"definition": "fresh"}},
	}
	snap, err := s.BulkLoad(incoming)
	require.NoError(t, err)

	assert.Len(t, snap.Nodes, 1)
	assert.Empty(t, snap.Edges)

	// The store copied the input rather than adopting it.
	incoming.Properties["a"]["definition"] = "tampered"
	assert.Equal(t, "fresh", s.Snapshot().Properties["a"].Definition())

	// Old state is unreachable.
	_, err = s.GetNode("1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBulkLoadRejectsInvalidGraphs(t *testing.T) {
	tests := []struct {
		name     string
		incoming *types.GraphSnapshot
		wantErr  error
	}{
		{
			name: "dangling edge",
			incoming: &types.GraphSnapshot{
				Nodes: []types.Node{{ID: "a"}},
				Edges: []types.Edge{{ID: "e", Source: "a", Target: "missing"}},
			},
			wantErr: types.ErrDanglingReference,
		},
		{
			name: "duplicate node id",
			incoming: &types.GraphSnapshot{
				Nodes: []types.Node{{ID: "a"}, {ID: "a"}},
			},
			wantErr: types.ErrDuplicateID,
		},
		{
			name: "edge id collides with node id",
			incoming: &types.GraphSnapshot{
				Nodes: []types.Node{{ID: "a"}, {ID: "b"}},
				Edges: []types.Edge{{ID: "a", Source: "a", Target: "b"}},
			},
			wantErr: types.ErrDuplicateID,
		},
		{
			name: "empty node id",
			incoming: &types.GraphSnapshot{
				Nodes: []types.Node{{ID: ""}},
			},
			wantErr: types.ErrEmptyID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seedStore(t)
			_, err := s.BulkLoad(tt.incoming)
			require.ErrorIs(t, err, tt.wantErr)

			// A rejected load leaves the previous state intact.
			_, err = s.GetNode("1")
			assert.NoError(t, err)
		})
	}
}

func TestSetPropertiesUnknownEntity(t *testing.T) {
	s := seedStore(t)
	_, err := s.SetProperties("ghost", types.Properties{"definition": "x"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestConcurrentMutationsAndReads(t *testing.T) {
	s := New()
	_, err := s.CreateNode(types.Node{ID: "hub", Label: "Hub"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("n%d", i)
			if _, err := s.CreateNode(types.Node{ID: id}); err != nil {
				t.Errorf("CreateNode(%s): %v", id, err)
				return
			}
			eid := fmt.Sprintf("e%d", i)
			if _, err := s.CreateEdge(types.Edge{ID: eid, Source: "hub", Target: id}); err != nil {
				t.Errorf("CreateEdge(%s): %v", eid, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			// A reader must never see an edge whose endpoint is missing.
			nodeIDs := snap.NodeIDs()
			for _, e := range snap.Edges {
				if _, ok := nodeIDs[e.Source]; !ok {
					t.Errorf("snapshot has edge %s with missing source %s", e.ID, e.Source)
				}
				if _, ok := nodeIDs[e.Target]; !ok {
					t.Errorf("snapshot has edge %s with missing target %s", e.ID, e.Target)
				}
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Nodes, 17)
	assert.Len(t, snap.Edges, 16)
}
