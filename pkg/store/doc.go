// Package store provides the authoritative in-memory graph store.
//
// GraphStore owns the only mutable shared graph state in the process. All
// access goes through its CRUD/snapshot methods; the internal containers are
// never exposed. Mutations are serialized by an internal RWMutex, and every
// mutating method returns the post-mutation snapshot taken under the same
// lock acquisition, so callers can broadcast exactly the state their
// mutation produced.
package store
