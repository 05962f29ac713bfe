// services/errors.go - error taxonomy shared by the engines
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict marks a duplicate achievement-award insert. Callers
	// swallow it: the award already existing is the expected outcome of
	// an idempotent re-evaluation, not a failure.
	ErrConflict = errors.New("duplicate award")

	// ErrNotFound marks lookups with no matching data. Rank lookups
	// translate it to a null result rather than an error response.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks an unreachable backing store. It
	// propagates as a fatal failure of the calling operation; retries
	// belong to the storage client, not the engines.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError rejects a malformed play event before anything is
// written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
