package domain

import "errors"

var (
	// ErrInvalidInput marks payloads rejected before any store mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks operations against an unknown product identifier.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks connection or timeout failures at the store
	// boundary, distinct from a bad request and from an empty result.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPartialBatch marks a bulk reconciliation where some operations
	// applied and some failed. Applied operations are not rolled back.
	ErrPartialBatch = errors.New("partial batch failure")
)
