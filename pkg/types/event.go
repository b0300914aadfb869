package types

// EventType identifies the kind of event broadcast to subscribers.
type EventType string

const (
	// GraphUpdateEventType carries a full post-mutation snapshot.
	GraphUpdateEventType EventType = "graph_update"
	// HighlightUpdateEventType carries sets of node/edge ids to highlight.
	// It does not correspond to a store mutation.
	HighlightUpdateEventType EventType = "highlight_update"
)

// Highlight is the payload of a highlight_update event.
type Highlight struct {
	NodeIDs []string `json:"node_ids"`
	EdgeIDs []string `json:"edge_ids"`
}

// Event is the envelope delivered to every streaming subscriber.
// Exactly one of Snapshot or Highlight is set, according to Type.
type Event struct {
	Type      EventType      `json:"type"`
	Snapshot  *GraphSnapshot `json:"snapshot,omitempty"`
	Highlight *Highlight     `json:"highlight,omitempty"`
}

// GraphUpdate builds a graph_update event for the given snapshot.
func GraphUpdate(snap *GraphSnapshot) Event {
	return Event{Type: GraphUpdateEventType, Snapshot: snap}
}

// HighlightUpdate builds a highlight_update event. Nil id slices are
// normalized to empty so the payload always encodes JSON arrays.
func HighlightUpdate(nodeIDs, edgeIDs []string) Event {
	if nodeIDs == nil {
		nodeIDs = []string{}
	}
	if edgeIDs == nil {
		edgeIDs = []string{}
	}
	return Event{Type: HighlightUpdateEventType, Highlight: &Highlight{NodeIDs: nodeIDs, EdgeIDs: edgeIDs}}
}
