package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The typed errors below wrap
// these, so callers can branch on the category without caring about ids.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDanglingReference = errors.New("dangling reference")
)

// NotFoundError reports an operation against an absent entity.
type NotFoundError struct {
	Kind string // "node" or "edge"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateIDError reports a create with an id that already exists.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// DanglingReferenceError reports an edge whose source or target does not
// name an existing node.
type DanglingReferenceError struct {
	EdgeID string
	NodeID string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("edge %q references missing node %q", e.EdgeID, e.NodeID)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// ProviderError reports a non-success response from the external embedding
// provider. It carries the upstream HTTP status so callers can surface it.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("embedding provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("embedding provider returned status %d: %s", e.StatusCode, e.Message)
}
