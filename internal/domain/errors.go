package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("not found")
	ErrValidation               = errors.New("validation failed")
	ErrDatesUnavailable         = errors.New("dates are not available")
	ErrAlreadyExists            = errors.New("user already exists")
	ErrAlreadyCancelled         = errors.New("booking is already cancelled")
	ErrCancellationWindowPassed = errors.New("cancellation is only allowed more than 3 days before check-in")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrForbidden                = errors.New("forbidden")
)

// ValidationError carries a caller-facing message about bad input.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps any failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// IsDomain reports whether err is one of the errors above and should reach the
// caller unchanged.
func IsDomain(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrValidation, ErrDatesUnavailable, ErrAlreadyExists,
		ErrAlreadyCancelled, ErrCancellationWindowPassed, ErrInvalidCredentials, ErrForbidden,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
