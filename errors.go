package burrow

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when an optimistic locking check fails.
	ErrVersionConflict = errors.New("version conflict")

	// ErrDuplicateID is returned when inserting a document with an ID that already exists.
	ErrDuplicateID = errors.New("duplicate id")
)
