package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnknownCriterion   = errors.New("unknown filter criterion")
	ErrUnknownView        = errors.New("unknown listing view")
	ErrDuplicateBroadcast = errors.New("broadcast already submitted")
	ErrNoRecipients       = errors.New("no recipients match the audience")
)

// ValidationError carries a human-readable reason and unwraps to ErrValidation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a ValidationError with the given reason.
func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
