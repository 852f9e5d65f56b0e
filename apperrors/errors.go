package apperrors

import "errors"

// Sentinel error kinds for the roster core. Callers classify failures with
// errors.Is; descriptive context is attached by wrapping with fmt.Errorf and
// the %w verb. The core never produces user-facing text — the command
// front-end translates kinds into messages.
var (
	// ErrNotFound indicates a referenced group or person does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey indicates a group name collision or a nickname
	// collision within a group.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidOperation indicates a structurally invalid request, such as
	// a cross-group swap or malformed numeric input.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrValidation indicates a required string field was empty after
	// trimming.
	ErrValidation = errors.New("validation failure")
)
