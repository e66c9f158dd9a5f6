package errs

import (
	"errors"
	"fmt"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ConflictError is returned when a request collides with work already in flight.
type ConflictError struct {
	ErrorMessage
}

// ReadOnlyError is returned when a write targets a source that cannot be written.
type ReadOnlyError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError wraps a failure reported by a third-party API.
// StatusCode is the HTTP status when the service exposed one.
type ExternalServiceError struct {
	ErrorMessage
	Service    string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

type MalformedResponseError struct {
	ErrorMessage
	Service string
}

type MissingCredentialError struct {
	ErrorMessage
}

type CredentialError struct {
	ErrorMessage
	Source string
	Err    error
}

func (e *CredentialError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewReadOnlyError(message string) *ReadOnlyError {
	return &ReadOnlyError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", message, err)},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service string, statusCode int, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s request failed: %v", service, err)},
		Service:      service,
		StatusCode:   statusCode,
		Transient:    transient,
		Err:          err,
	}
}

func NewMalformedResponseError(service, detail string) *MalformedResponseError {
	return &MalformedResponseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("malformed %s response: %s", service, detail)},
		Service:      service,
	}
}

func NewMissingCredentialError(source string) *MissingCredentialError {
	return &MissingCredentialError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("no credential available from %s", source)},
	}
}

func NewCredentialError(source string, err error) *CredentialError {
	return &CredentialError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("resolve credential from %s: %v", source, err)},
		Source:       source,
		Err:          err,
	}
}

// Is reports whether any error in err's chain is of type T.
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
