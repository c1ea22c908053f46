package errors

import (
	"fmt"
	"net/http"
)

var (
	// Tokens and auth
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrEmptyAuthHeader      = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader    = fmt.Errorf("authorization header has invalid format")
	ErrInvalidCredentials   = fmt.Errorf("invalid credentials")
	ErrUnauthorized         = fmt.Errorf("unauthorized")
	ErrForbidden            = fmt.Errorf("forbidden")

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Generic
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")
)

// HttpError carries an HTTP status code together with a caller-facing
// message. Err keeps the underlying cause for logging, Details is an
// optional payload rendered into the response body.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// The four expected outcomes of the access lifecycle. Everything else
// propagates as a generic infrastructure failure (500).

// NewNotFound reports an unknown equipment identifier or record id.
func NewNotFound(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidState reports an operation that is not legal in the current
// status, e.g. an exit with no active record.
func NewInvalidState(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewConflict reports an attempted duplicate active record.
func NewConflict(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// NewForbidden reports an access blocked for security reasons.
func NewForbidden(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}
