package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not in the feed
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrNoDialog will throw if a dialog operation runs while no dialog is open
	ErrNoDialog = errors.New("no comment dialog is open")
)

// NetworkError is a transport failure; the request may not have reached the server.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a missing, expired or rejected credential.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError is raised client-side before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServerError is a non-auth 4xx/5xx answer carrying the server's message.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// UserMessage returns the text to show a user for err.
// Server and validation messages are passed through verbatim.
func UserMessage(err error, fallback string) string {
	var (
		serverErr     *ServerError
		validationErr *ValidationError
		authErr       *AuthError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &serverErr) && serverErr.Message != "":
		return serverErr.Message
	case errors.As(err, &authErr) && authErr.Message != "":
		return authErr.Message
	default:
		return fallback
	}
}

// IsAuth reports whether err asks the user to log in again.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
