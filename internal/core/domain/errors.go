package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file type at the
	// extraction boundary or an unknown provider name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNoChunks indicates chunking produced nothing to ingest.
	ErrNoChunks = errors.New("document produced no chunks")

	// ErrDimensionMismatch indicates a vector whose length does not match
	// the index dimension. Surfaced to the caller, never dropped.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrProviderUnavailable indicates an external embedding or generation
	// capability failed. Recovered locally via fallback degradation.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrPersistence indicates a failure to read or write the index's
	// durable structures. Fatal for the operation in progress.
	ErrPersistence = errors.New("persistence failure")

	// ErrGenerationFailed indicates the generation capability returned an
	// error and no fallback could serve the request.
	ErrGenerationFailed = errors.New("generation failed")
)
