package dto

import (
	"errors"
	"strings"

	"github.com/soundprediction/semagraph/pkg/types"
)

// SearchRequest is a single free-text query. Clients may ship their own
// graph in graph_data; when absent the server's current graph is searched.
type SearchRequest struct {
	Query     string            `json:"query"`
	GraphData *LoadGraphRequest `json:"graph_data,omitempty"`
}

// Validate performs validation on SearchRequest
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("query is required")
	}
	return nil
}

// SearchResponse carries the best match for a single query.
type SearchResponse struct {
	MostRelevantID string  `json:"most_relevant_id"`
	Score          float64 `json:"score"`
}

// SearchAllQuery is the structured part of a batch search: the objects and
// relations to resolve into a connected subgraph.
type SearchAllQuery struct {
	Objects   []types.QueryObject   `json:"objects"`
	Relations []types.QueryRelation `json:"relations"`
}

// SearchAllRequest is a batch search. The query may sit under the query
// key, as the web client sends it, or inline at the top level.
type SearchAllRequest struct {
	SearchAllQuery
	Query     *SearchAllQuery   `json:"query,omitempty"`
	GraphData *LoadGraphRequest `json:"graph_data,omitempty"`
}

// Normalized returns the effective objects and relations regardless of
// which shape the client used.
func (r *SearchAllRequest) Normalized() ([]types.QueryObject, []types.QueryRelation) {
	if r.Query != nil {
		return r.Query.Objects, r.Query.Relations
	}
	return r.Objects, r.Relations
}

// HighlightRequest names the entities to highlight on connected clients,
// mirroring the highlight_update event payload.
type HighlightRequest struct {
	NodeIDs []string `json:"node_ids"`
	EdgeIDs []string `json:"edge_ids"`
}

// SyncResponse reports the size of a graph imported from an external store.
type SyncResponse struct {
	Success bool `json:"success"`
	Nodes   int  `json:"nodes"`
	Edges   int  `json:"edges"`
}
