package jsonstore

import "errors"

// Errors classifying why a store operation failed. Callers map these to
// HTTP statuses.
var (
	// ErrNotFound means the pointer (or a path referenced inside a
	// patch) does not resolve against the current document.
	ErrNotFound = errors.New("pointer not found in document")

	// ErrTestFailed means a patch test operation's precondition did not
	// hold; the document is unchanged.
	ErrTestFailed = errors.New("patch test operation failed")

	// ErrBadPatch means the patch document itself is malformed.
	ErrBadPatch = errors.New("malformed patch document")
)
