// Package search implements embedding-based matching over a graph
// snapshot: scoring free-text queries against entity definitions, picking
// the best match above a threshold, and expanding matches into a connected
// subgraph through their direct neighbors.
//
// Matching is an exhaustive linear scan over candidates, O(candidates ×
// vector length). That is fine at the scale of one in-memory graph;
// callers that outgrow it should shard candidates by entity type before
// scanning rather than expecting an index here.
package search
