/*
errors.go - Error types for the tenancy domain

PURPOSE:
  All domain error types in one place. The error taxonomy is small:
  date parse failures are swallowed into absent/Unknown before they
  ever become errors, so what remains is the positional-delete guard
  and persistence failures.

ERROR CATEGORIES:
  1. Index errors - delete against an invalid position (client error,
     reported so the caller can warn, never fatal)
  2. History errors - load/flush failures from the durable collaborator

USAGE:
  if errors.Is(err, tenancy.ErrIndexOutOfRange) {
      // warn the user, store is unchanged
  }

SEE ALSO:
  - store.go: Returns these errors
  - predict/model.go: Owns ErrModelArtifactMissing (the one fatal case)
*/
package tenancy

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrIndexOutOfRange is returned when a delete targets a position
	// outside the current record sequence. The store is left unchanged.
	ErrIndexOutOfRange = errors.New("record index out of range")

	// ErrFlushFailed is returned when the durable history rejects a
	// post-mutation flush. The in-memory state is already mutated; the
	// flush is best-effort with no partial-write recovery.
	ErrFlushFailed = errors.New("history flush failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// IndexOutOfRangeError reports the rejected position and the current
// length, so a UI can explain which indices are valid.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("record index %d out of range (store has %d records)", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller
// input rather than a system failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
