package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFormat indicates a document could not be parsed as a workbook.
	// This is a document-level failure; the batch continues.
	ErrFormat = errors.New("invalid document format")

	// ErrPersistence indicates the result sink rejected a write.
	// The affected document is marked failed; results are never dropped silently.
	ErrPersistence = errors.New("persistence failed")

	// ErrDuplicateCheck indicates a check name was registered twice.
	ErrDuplicateCheck = errors.New("duplicate check name")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
