package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services, repositories and the HTTP layer.
var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrDuplicateParticipation = errors.New("participation already exists")
	ErrRegistrationClosed     = errors.New("registration is closed for this event")
	ErrStaleEvent             = errors.New("event status changed concurrently")
)

// Specific validation causes. A ValidationError wraps at most one of these.
var (
	ErrMissingRole         = errors.New("required role missing")
	ErrRoleLimit           = errors.New("role limit reached")
	ErrRequiredRole        = errors.New("role is required by the event type")
	ErrDuplicateNationalID = errors.New("national id already registered")
)

// ValidationError reports a single violated field-level or structural rule.
// swagger:model ValidationError
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// NewValidationError returns a ValidationError for field with the given reason.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap exposes ErrValidation and the specific cause, if any, to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}

// TransitionError reports an illegal state machine move.
type TransitionError struct {
	From   EventStatus
	To     EventStatus
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// AsValidationError returns the first ValidationError in err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
