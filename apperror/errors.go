// Package apperror defines the error kinds shared by the catalog, guest
// directory, reservation ledger and storage gateway. Callers match them with
// errors.Is; the shell uses them to decide what to print and whether to
// re-prompt.
package apperror

import "errors"

var (
	// ErrValidation marks empty required fields, malformed dates and
	// out-of-range selections.
	ErrValidation = errors.New("validation failed")

	ErrNotFound = errors.New("not found")

	// ErrInvalidDateRange is returned when check-out is not strictly after
	// check-in.
	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	ErrRoomUnavailable  = errors.New("room is not available")
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	ErrAlreadyPaid      = errors.New("payment already completed")

	// ErrAlreadyCompleted is returned when a checked-out stay is cancelled
	// or checked out again.
	ErrAlreadyCompleted = errors.New("reservation already completed")

	// ErrPersistence wraps I/O failures from the storage gateway.
	ErrPersistence = errors.New("persistence failure")
)
