package docstore

import "errors"

// Common store errors.
var (
	// ErrNotFound is returned when a document id is absent from its collection.
	ErrNotFound = errors.New("document not found")
	// ErrStoreUnavailable wraps any failure to reach or read/write the backing database.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
