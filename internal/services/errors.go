package services

import "errors"

// ErrRecordNotFound signals that no record matched the given id and
// session. Handlers translate it to a 404; it is deliberately the same
// whether the id does not exist or another session owns it.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
