// Package common defines shared constants and sentinel errors used across
// the folio client layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Client-detected bad input. Always raised before any network call.
	ErrValidation = errors.New("validation error")

	// Gated actions attempted without a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")

	// Transport and remote failures.
	ErrNetwork = errors.New("network error")
	ErrServer  = errors.New("server error")

	// Malformed local or remote JSON.
	ErrDecode = errors.New("decode error")

	// A like toggle for the same item is still pending.
	ErrInFlight = errors.New("request already in flight")

	ErrNotFound = errors.New("not found")
)

// GenericFailureMessage is shown when the server gives no usable message.
const GenericFailureMessage = "Something went wrong"

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError is a shorthand for &ValidationError{...}.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ServerError is a non-2xx response. Message holds the API's "error"
// (or "message") field when one was present.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.Status)
	}
	return fmt.Sprintf("server responded with status %d: %s", e.Status, e.Message)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// Public returns the text that may be shown to the user.
func (e *ServerError) Public() string {
	if e.Message == "" {
		return GenericFailureMessage
	}
	return e.Message
}

// PublicMessage picks the user-facing text for err. Server messages are
// passed verbatim, validation messages as-is, and everything else maps to
// fallback.
func PublicMessage(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return "Please sign in first"
	}
	return fallback
}

type signInRequiredError struct {
	action string
}

func (e *signInRequiredError) Error() string {
	return "sign in required to " + e.action
}

// A gated action without a session is both a validation failure and a
// missing-authentication condition.
func (e *signInRequiredError) Is(target error) bool {
	return target == ErrNotAuthenticated || target == ErrValidation
}

// SignInRequired is returned before any network call when action needs a
// session and there is none.
func SignInRequired(action string) error {
	return &signInRequiredError{action: action}
}
