package connector

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/soundprediction/semagraph/pkg/types"
)

// DefaultNodeLabel is used when neither the configured label property nor
// a native label is present.
const DefaultNodeLabel = "DefaultNodeLabel"

// Config holds Neo4j connection details and the property mapping rules.
type Config struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`

	// IDProperty names the node property used as the application id,
	// falling back to the Neo4j element id when absent.
	IDProperty string `mapstructure:"id_property"`
	// LabelProperty names the property used as the display label,
	// falling back to the native label, then DefaultNodeLabel.
	LabelProperty string `mapstructure:"label_property"`
}

// Neo4jConnector bulk-fetches a graph from Neo4j.
type Neo4jConnector struct {
	client   neo4j.DriverWithContext
	database string
	cfg      Config
}

// New creates a connector and verifies connectivity.
func New(ctx context.Context, cfg Config) (*Neo4jConnector, error) {
	if cfg.IDProperty == "" {
		cfg.IDProperty = "uuid"
	}
	if cfg.LabelProperty == "" {
		cfg.LabelProperty = "name"
	}
	if cfg.Database == "" {
		cfg.Database = "neo4j"
	}

	client, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	return &Neo4jConnector{client: client, database: cfg.Database, cfg: cfg}, nil
}

// FetchGraph fetches every node and relationship and assembles a snapshot
// for BulkLoad.
func (c *Neo4jConnector) FetchGraph(ctx context.Context) (*types.GraphSnapshot, error) {
	snap := &types.GraphSnapshot{Properties: types.PropertyMap{}}

	if err := c.fetchNodes(ctx, snap); err != nil {
		return nil, err
	}
	if err := c.fetchRelationships(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Close releases the underlying driver.
func (c *Neo4jConnector) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}

func (c *Neo4jConnector) fetchNodes(ctx context.Context, snap *types.GraphSnapshot) error {
	session := c.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (n) RETURN n", nil)
		if err != nil {
			return nil, err
		}

		for res.Next(ctx) {
			nodeValue, found := res.Record().Get("n")
			if !found {
				continue
			}
			node, ok := nodeValue.(dbtype.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected type for node: got %T, expected dbtype.Node", nodeValue)
			}

			id := c.nodeID(node)
			snap.Nodes = append(snap.Nodes, types.Node{ID: id, Label: c.nodeLabel(node)})
			snap.Properties[id] = types.Properties(node.Props)
		}
		return nil, res.Err()
	})
	if err != nil {
		return fmt.Errorf("failed to fetch nodes: %w", err)
	}
	return nil
}

func (c *Neo4jConnector) fetchRelationships(ctx context.Context, snap *types.GraphSnapshot) error {
	session := c.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database})
	defer session.Close(ctx)

	_, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "MATCH (n)-[r]->(m) RETURN n, r, m", nil)
		if err != nil {
			return nil, err
		}

		for res.Next(ctx) {
			record := res.Record()
			source, sok := record.Get("n")
			rel, rok := record.Get("r")
			target, tok := record.Get("m")
			if !sok || !rok || !tok {
				continue
			}

			sourceNode, ok := source.(dbtype.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected type for source node: %T", source)
			}
			targetNode, ok := target.(dbtype.Node)
			if !ok {
				return nil, fmt.Errorf("unexpected type for target node: %T", target)
			}
			relationship, ok := rel.(dbtype.Relationship)
			if !ok {
				return nil, fmt.Errorf("unexpected type for relationship: %T", rel)
			}

			id := relationship.ElementId
			snap.Edges = append(snap.Edges, types.Edge{
				ID:     id,
				Source: c.nodeID(sourceNode),
				Target: c.nodeID(targetNode),
				Label:  relationship.Type,
			})
			snap.Properties[id] = types.Properties(relationship.Props)
		}
		return nil, res.Err()
	})
	if err != nil {
		return fmt.Errorf("failed to fetch relationships: %w", err)
	}
	return nil
}

// nodeID maps a database node onto the application id: the configured id
// property when present, otherwise the element id.
func (c *Neo4jConnector) nodeID(node dbtype.Node) string {
	if v, ok := node.Props[c.cfg.IDProperty]; ok {
		return fmt.Sprintf("%v", v)
	}
	return node.ElementId
}

// nodeLabel maps a database node onto the display label: the configured
// label property, then the first native label, then the constant default.
func (c *Neo4jConnector) nodeLabel(node dbtype.Node) string {
	if v, ok := node.Props[c.cfg.LabelProperty]; ok {
		if s := fmt.Sprintf("%v", v); s != "" {
			return s
		}
	}
	if len(node.Labels) > 0 {
		return node.Labels[0]
	}
	return DefaultNodeLabel
}
