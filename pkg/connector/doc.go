// Package connector imports graphs from an external Neo4j database.
//
// The connector bulk-fetches every node and relationship, maps database
// properties onto the application's id/label shape, and returns a
// GraphSnapshot ready for the store's BulkLoad. Id and label property
// names are configurable; labels fall back to the entity's native Neo4j
// label (or relationship type) and finally to a constant default.
package connector
