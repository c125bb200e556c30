package billing

import "errors"

// Sentinel errors shared by repositories and services. Callers match them
// with errors.Is; implementations wrap them with context.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotEditable       = errors.New("not editable in current status")
)
