package connector

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/assert"
)

func mappingConnector() *Neo4jConnector {
	return &Neo4jConnector{cfg: Config{IDProperty: "uuid", LabelProperty: "name"}}
}

func TestNodeIDMapping(t *testing.T) {
	c := mappingConnector()

	tests := []struct {
		name string
		node dbtype.Node
		want string
	}{
		{
			name: "configured id property wins",
			node: dbtype.Node{ElementId: "4:abc:0", Props: map[string]any{"uuid": "n-42"}},
			want: "n-42",
		},
		{
			name: "non-string id is stringified",
			node: dbtype.Node{ElementId: "4:abc:0", Props: map[string]any{"uuid": int64(7)}},
			want: "7",
		},
		{
			name: "falls back to element id",
			node: dbtype.Node{ElementId: "4:abc:1", Props: map[string]any{}},
			want: "4:abc:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.nodeID(tt.node))
		})
	}
}

func TestNodeLabelMapping(t *testing.T) {
	c := mappingConnector()

	tests := []struct {
		name string
		node dbtype.Node
		want string
	}{
		{
			name: "configured label property wins",
			node: dbtype.Node{Labels: []string{"Person"}, Props: map[string]any{"name": "Alice"}},
			want: "Alice",
		},
		{
			name: "empty label property falls back to native label",
			node: dbtype.Node{Labels: []string{"Person"}, Props: map[string]any{"name": ""}},
			want: "Person",
		},
		{
			name: "no label property falls back to native label",
			node: dbtype.Node{Labels: []string{"Person", "Employee"}, Props: map[string]any{}},
			want: "Person",
		},
		{
			name: "no labels at all falls back to the default",
			node: dbtype.Node{Props: map[string]any{}},
			want: DefaultNodeLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.nodeLabel(tt.node))
		})
	}
}
