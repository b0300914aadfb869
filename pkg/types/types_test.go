package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNodeValidation(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{
			name:    "valid node",
			node:    Node{ID: "n1", Label: "Person"},
			wantErr: nil,
		},
		{
			name:    "empty id",
			node:    Node{ID: "", Label: "Person"},
			wantErr: ErrEmptyID,
		},
		{
			name:    "label may be empty",
			node:    Node{ID: "n2"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if err != tt.wantErr {
				t.Errorf("Node.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEdgeValidation(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{
			name:    "valid edge",
			edge:    Edge{ID: "e1", Source: "1", Target: "2", Label: "knows"},
			wantErr: nil,
		},
		{
			name:    "empty id",
			edge:    Edge{Source: "1", Target: "2"},
			wantErr: ErrEmptyID,
		},
		{
			name:    "empty source",
			edge:    Edge{ID: "e1", Target: "2"},
			wantErr: ErrEmptySource,
		},
		{
			name:    "empty target",
			edge:    Edge{ID: "e1", Source: "1"},
			wantErr: ErrEmptyTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.Validate()
			if err != tt.wantErr {
				t.Errorf("Edge.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPropertiesDefinition(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
		want  string
	}{
		{"nil map", nil, ""},
		{"missing key", Properties{"type": "node"}, ""},
		{"string definition", Properties{"definition": "a thing"}, "a thing"},
		{"non-string definition", Properties{"definition": 42}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.props.Definition(); got != tt.want {
				t.Errorf("Definition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypedErrorsUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", &NotFoundError{Kind: "node", ID: "1"}, ErrNotFound},
		{"duplicate", &DuplicateIDError{Kind: "edge", ID: "e1"}, ErrDuplicateID},
		{"dangling", &DanglingReferenceError{EdgeID: "e1", NodeID: "9"}, ErrDanglingReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			if tt.err.Error() == "" {
				t.Error("expected non-empty error message")
			}
		})
	}
}

func TestSnapshotLookups(t *testing.T) {
	snap := &GraphSnapshot{
		Nodes: []Node{{ID: "1", Label: "Node 1"}, {ID: "2", Label: "Node 2"}},
		Edges: []Edge{{ID: "e1", Source: "1", Target: "2", Label: "Edge 1"}},
	}

	if _, ok := snap.NodeIDs()["1"]; !ok {
		t.Error("expected node id 1 in NodeIDs")
	}
	if _, ok := snap.EdgeIDs()["e1"]; !ok {
		t.Error("expected edge id e1 in EdgeIDs")
	}
	if e := snap.FindEdge("e1"); e == nil || e.Source != "1" {
		t.Errorf("FindEdge(e1) = %+v, want source 1", e)
	}
	if e := snap.FindEdge("missing"); e != nil {
		t.Errorf("FindEdge(missing) = %+v, want nil", e)
	}
}

func TestSnapshotJSONShape(t *testing.T) {
	snap := GraphSnapshot{
		Nodes:      []Node{{ID: "1", Label: "Node 1"}},
		Edges:      []Edge{},
		Properties: PropertyMap{"1": {"definition": "Definition 1"}},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"nodes", "edges", "allValues"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in snapshot JSON", key)
		}
	}
}

func TestHighlightUpdateNormalizesNils(t *testing.T) {
	ev := HighlightUpdate(nil, nil)
	if ev.Type != HighlightUpdateEventType {
		t.Fatalf("unexpected type %q", ev.Type)
	}
	if ev.Highlight.NodeIDs == nil || ev.Highlight.EdgeIDs == nil {
		t.Error("expected nil id slices to be normalized to empty")
	}
}
