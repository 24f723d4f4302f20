package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions every layer can test with errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("user is not verified")
	ErrUserSuspended      = errors.New("user is suspended")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidID          = errors.New("malformed id")
	ErrOTPInvalid         = errors.New("otp has expired or is invalid")
	ErrOTPMismatch        = errors.New("invalid otp")
	ErrAlreadyVerified    = errors.New("user is already verified")
	ErrPasswordMismatch   = errors.New("old password does not match")
	ErrPasswordAlreadySet = errors.New("password already set")
	ErrEmailImmutable     = errors.New("email cannot be updated")
)

// Kind classifies an error for the HTTP layer. The set is closed: every
// failing operation produces one of these deliberately, and the central
// handler matches them exhaustively instead of sniffing error shapes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// ErrorSource is a field-level detail attached to validation failures.
type ErrorSource struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the tagged error type carried across service boundaries when a
// sentinel alone is not enough (validation details, wrapped causes).
type Error struct {
	Kind    Kind
	Message string
	Sources []ErrorSource
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a tagged error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ValidationError builds a KindValidation error carrying field sources.
func ValidationError(message string, sources ...ErrorSource) *Error {
	return &Error{Kind: KindValidation, Message: message, Sources: sources}
}

// KindOf resolves the Kind for any error produced by this module: tagged
// errors carry their own kind, sentinels map to a fixed kind, anything
// else is internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrUserExists):
		return KindConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserNotVerified),
		errors.Is(err, ErrUserSuspended),
		errors.Is(err, ErrInvalidToken):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrOTPInvalid),
		errors.Is(err, ErrOTPMismatch),
		errors.Is(err, ErrAlreadyVerified),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordAlreadySet),
		errors.Is(err, ErrEmailImmutable):
		return KindBadRequest
	}
	return KindInternal
}
