package search

import "github.com/soundprediction/semagraph/pkg/types"

// Neighbors returns the ids of the entity's direct, not-yet-excluded
// neighbors.
//
// For an edge id the neighbors are its source then target, skipping
// excluded endpoints. For a node id they are the far endpoints of every
// incident edge, again skipping excluded ids; the incident edge's own id
// is never emitted. An id that names neither a node nor an edge yields
// nil: unknown ids are a valid "nothing here" case, not an error.
func Neighbors(entityID string, snap *types.GraphSnapshot, excluded map[string]struct{}) []string {
	if edge := snap.FindEdge(entityID); edge != nil {
		var neighbors []string
		if _, skip := excluded[edge.Source]; !skip {
			neighbors = append(neighbors, edge.Source)
		}
		if _, skip := excluded[edge.Target]; !skip {
			neighbors = append(neighbors, edge.Target)
		}
		return neighbors
	}

	if _, ok := snap.NodeIDs()[entityID]; !ok {
		return nil
	}

	var neighbors []string
	for _, edge := range snap.Edges {
		switch entityID {
		case edge.Source:
			if _, skip := excluded[edge.Target]; !skip {
				neighbors = append(neighbors, edge.Target)
			}
		case edge.Target:
			if _, skip := excluded[edge.Source]; !skip {
				neighbors = append(neighbors, edge.Source)
			}
		}
	}
	return neighbors
}
