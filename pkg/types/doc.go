// Package types defines the core data types for the semagraph property graph.
//
// This package contains the fundamental types used throughout semagraph:
//   - Node and Edge: the entities of the graph, uniformly addressable by id
//   - Properties: the per-entity attribute bag, including the free-text
//     definition used for embeddings
//   - GraphSnapshot: an immutable point-in-time copy of the whole graph
//   - QueryObject and QueryRelation: transient semantic-search inputs
//   - Event: the envelope broadcast to streaming subscribers
//
// # Validation
//
// Types provide Validate() methods for input validation:
//
//	node := &types.Node{ID: "n1", Label: "Person"}
//	if err := node.Validate(); err != nil {
//	    // Handle validation error
//	}
//
// # Errors
//
// Store-level failures are represented by typed errors (NotFoundError,
// DuplicateIDError, DanglingReferenceError) that can be matched with
// errors.As, plus matching sentinels for errors.Is.
package types
