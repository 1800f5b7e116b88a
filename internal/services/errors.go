package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. The HTTP layer maps
// them onto status codes: ValidationError 400, ErrInvalidCredentials /
// ErrAccountDisabled 401, ErrSelfDelete 403, *NotFound 404, anything
// else 500.
var (
	ErrPropertyNotFound   = errors.New("property not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidationError reports whether err carries a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
