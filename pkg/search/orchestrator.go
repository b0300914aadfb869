package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soundprediction/semagraph/pkg/embedding"
	"github.com/soundprediction/semagraph/pkg/types"
)

// DefaultThreshold is the minimum dot-product score a candidate must
// exceed to count as a match when the caller does not configure one.
const DefaultThreshold = 200

// Orchestrator drives the matcher and neighbor expansion across a batch
// of query objects and relations, accumulating a connected subgraph.
type Orchestrator struct {
	matcher *Matcher
	logger  *slog.Logger
}

// NewOrchestrator creates an Orchestrator over the given embedding cache.
func NewOrchestrator(cache *embedding.Cache, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		matcher: NewMatcher(cache),
		logger:  logger.With("component", "search"),
	}
}

// FindBestForObject matches one query object against every node and edge
// in the snapshot. Candidates are keyed "{entity_id}: {definition}".
func (o *Orchestrator) FindBestForObject(ctx context.Context, snap *types.GraphSnapshot, obj types.QueryObject, threshold float64) (string, float64, error) {
	if obj.Name == "" && obj.Definition == "" {
		return "", 0, fmt.Errorf("query object needs a name or a definition: %w", types.ErrEmptyQuery)
	}

	queryText := embedding.CacheKey(obj.Name, obj.Definition)
	return o.matcher.FindBest(ctx, queryText, entityCandidates(snap), threshold)
}

// FindBestForRelation matches one query relation against the snapshot's
// edges. Candidates are keyed "{source}-{target}: {definition}".
func (o *Orchestrator) FindBestForRelation(ctx context.Context, snap *types.GraphSnapshot, rel types.QueryRelation, threshold float64) (string, float64, error) {
	if rel.Source == "" || rel.Target == "" {
		return "", 0, fmt.Errorf("query relation needs source and target: %w", types.ErrEmptyQuery)
	}

	queryText := embedding.CacheKey(rel.Source+"-"+rel.Target, rel.Definition)
	return o.matcher.FindBest(ctx, queryText, edgeCandidates(snap), threshold)
}

// SearchQuery matches a raw query string against every node and edge and
// returns the single most relevant entity id with its score.
func (o *Orchestrator) SearchQuery(ctx context.Context, snap *types.GraphSnapshot, query string, threshold float64) (string, float64, error) {
	if query == "" {
		return "", 0, types.ErrEmptyQuery
	}
	return o.matcher.FindBest(ctx, query, entityCandidates(snap), threshold)
}

// SearchAll runs every query object and relation against the snapshot and
// returns the matched subgraph plus a link entry per match recording its
// not-yet-matched neighbors.
//
// Matching is independent per query item; the only coupling is the
// already-matched exclusion set passed to neighbor expansion. Links keep
// processing order: objects first, then relations.
func (o *Orchestrator) SearchAll(ctx context.Context, snap *types.GraphSnapshot, objects []types.QueryObject, relations []types.QueryRelation, threshold float64) (*types.SearchResults, error) {
	if len(objects) == 0 && len(relations) == 0 {
		return types.EmptySearchResults(), nil
	}

	matchedNodes := make(map[string]struct{})
	matchedEdges := make(map[string]struct{})
	results := types.EmptySearchResults()

	for _, obj := range objects {
		matchID, score, err := o.FindBestForObject(ctx, snap, obj, threshold)
		if err != nil {
			return nil, fmt.Errorf("matching object %q: %w", obj.Name, err)
		}
		if matchID == "" {
			continue
		}
		o.logger.Debug("object matched", "name", obj.Name, "entity_id", matchID, "score", score)

		matchedNodes[matchID] = struct{}{}
		neighbors := Neighbors(matchID, snap, matchedNodes)
		if neighbors == nil {
			neighbors = []string{}
		}
		results.Links = append(results.Links, types.Link{Node: matchID, Neighbors: neighbors})
	}

	for _, rel := range relations {
		matchID, score, err := o.FindBestForRelation(ctx, snap, rel, threshold)
		if err != nil {
			return nil, fmt.Errorf("matching relation %s-%s: %w", rel.Source, rel.Target, err)
		}
		if matchID == "" {
			continue
		}
		o.logger.Debug("relation matched", "source", rel.Source, "target", rel.Target, "entity_id", matchID, "score", score)

		matchedEdges[matchID] = struct{}{}
		neighbors := Neighbors(matchID, snap, matchedEdges)
		if neighbors == nil {
			neighbors = []string{}
		}
		results.Links = append(results.Links, types.Link{Edge: matchID, Neighbors: neighbors})
	}

	for _, node := range snap.Nodes {
		if _, ok := matchedNodes[node.ID]; ok {
			results.Nodes = append(results.Nodes, node)
		}
	}
	for _, edge := range snap.Edges {
		if _, ok := matchedEdges[edge.ID]; ok {
			results.Edges = append(results.Edges, edge)
		}
	}
	return results, nil
}

// entityCandidates keys every node and edge by "{id}: {definition}".
// Entities without a definition get empty text and are skipped by the
// matcher.
func entityCandidates(snap *types.GraphSnapshot) []Candidate {
	candidates := make([]Candidate, 0, len(snap.Nodes)+len(snap.Edges))
	for _, n := range snap.Nodes {
		candidates = append(candidates, Candidate{ID: n.ID, Text: definitionText(snap, n.ID, n.ID)})
	}
	for _, e := range snap.Edges {
		candidates = append(candidates, Candidate{ID: e.ID, Text: definitionText(snap, e.ID, e.ID)})
	}
	return candidates
}

// edgeCandidates keys every edge by "{source}-{target}: {definition}".
func edgeCandidates(snap *types.GraphSnapshot) []Candidate {
	candidates := make([]Candidate, 0, len(snap.Edges))
	for _, e := range snap.Edges {
		candidates = append(candidates, Candidate{
			ID:   e.ID,
			Text: definitionText(snap, e.ID, e.Source+"-"+e.Target),
		})
	}
	return candidates
}

// definitionText builds the embedding text for the entity with the given
// properties id, keyed under keyID. Empty when the entity has no
// definition.
func definitionText(snap *types.GraphSnapshot, propsID, keyID string) string {
	def := snap.Properties[propsID].Definition()
	if def == "" {
		return ""
	}
	return embedding.CacheKey(keyID, def)
}
