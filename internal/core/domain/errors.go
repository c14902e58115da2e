package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Workflow Errors.

	// ErrNoVideo indicates an annotation was saved before a video was loaded.
	ErrNoVideo = errors.New("no video loaded")

	// ErrNoDocuments indicates a codebook derivation was requested with
	// no parsed documents in the session.
	ErrNoDocuments = errors.New("no parsed documents")

	// ErrEmptyInput indicates pasted or uploaded text was blank.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyCodebook indicates an export was requested with no rows.
	ErrEmptyCodebook = errors.New("codebook has no rows")
)
