package repository

import "errors"

var (
	// ErrNotFound is returned when the backend reports the practice or doctor as absent.
	ErrNotFound = errors.New("resource not found")
	// ErrRejected is returned for an {error: ...} envelope that is not a not-found.
	ErrRejected = errors.New("backend rejected the request")
	// ErrConflict is returned when an optimistic update kept losing to concurrent writers.
	ErrConflict = errors.New("concurrent update conflict")
)
