package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages returned to clients.
const (
	MsgUserNotFound     = "User not found"
	MsgNameEmailMissing = "Name and email are required"
	MsgInvalidBody      = "Invalid request body"
	MsgInternal         = "Internal server error"
	MsgTooManyRequests  = "Too many requests"
	MsgInvalidSearch    = "Invalid search query"
	MsgInvalidFormat    = "Invalid format"
)

// APIError is an error that carries the HTTP status and the message clients see.
// It is passed through the translation layer verbatim.
type APIError struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a 400 error for invalid or incomplete input
func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NewNotFoundError creates a 404 error for identifiers that do not exist
func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

// NewTooManyRequestsError creates a 429 error for clients over their rate limit
func NewTooManyRequestsError() *APIError {
	return &APIError{Status: http.StatusTooManyRequests, Message: MsgTooManyRequests}
}

// NewInternalError creates a 500 error. The wrapped error is kept for logging only.
func NewInternalError(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}

// IsBadRequest reports whether err translates to a 400
func IsBadRequest(err error) bool {
	return Translate(err).Status == http.StatusBadRequest
}

// IsNotFound reports whether err translates to a 404
func IsNotFound(err error) bool {
	return Translate(err).Status == http.StatusNotFound
}

// Translate is the single mapping from any failure to the status and message sent
// to clients. An APIError anywhere in the chain is returned unchanged; everything
// else becomes a generic internal error so no internal detail leaks.
func Translate(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError(err)
}
