package domain

import "errors"

// Sentinel errors shared across services, repositories and delivery.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlug = errors.New("slug already in use")

	ErrFieldRequired   = errors.New("field is required")
	ErrEmptyCollection = errors.New("must contain at least one entry")

	ErrInvalidEmail        = errors.New("invalid email address")
	ErrMissingEventID      = errors.New("event_id is required")
	ErrEventNotExists      = errors.New("referenced event_id does not exist")
	ErrStoreNotInitialized = errors.New("event store is not initialized")
)

// ValidationError names the field of a candidate record that failed validation,
// wrapping the sentinel that classifies the failure.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
