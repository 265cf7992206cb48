package models

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by mutations when no actor identity
// is present in the request context.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotFound is returned by mutations targeting a nonexistent record.
// Queries stay tolerant and return nil/empty instead.
var ErrNotFound = errors.New("not found")

// DuplicateKeyError is returned on slug/email collisions
type DuplicateKeyError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// ReferentialIntegrityError is returned when deleting a record still
// referenced by at least one article.
type ReferentialIntegrityError struct {
	Entity string
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s: %s", e.Entity, e.Reason)
}
