package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalid      ErrorKind = "invalid"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
)

// ServiceError is a business-rule failure: a stable machine-checkable kind
// plus the message shown to the caller. Anything else reaching a controller
// is an infrastructure failure.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NotFound(message string) error {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func Invalid(message string) error {
	return &ServiceError{Kind: KindInvalid, Message: message}
}

func Unauthorized(message string) error {
	return &ServiceError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

// AsServiceError unwraps err to a *ServiceError if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	se, ok := AsServiceError(err)
	return ok && se.Kind == kind
}
