package storage

import (
	"errors"
	"fmt"
)

// Store error taxonomy. Every operation wraps one of these sentinels so
// callers can branch with errors.Is while still seeing the engine detail
// in the message. Retrying is left entirely to the caller.
var (
	// ErrNotInitialized is returned when an operation runs before Open
	// succeeded or after Close. This is a programming error in the caller.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrStoreUnavailable means the underlying database could not be opened.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrReadFailed and ErrWriteFailed wrap engine-level I/O errors on a
	// specific transaction.
	ErrReadFailed  = errors.New("store read failed")
	ErrWriteFailed = errors.New("store write failed")
)

func readFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrReadFailed, op, err)
}

func writeFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrWriteFailed, op, err)
}
