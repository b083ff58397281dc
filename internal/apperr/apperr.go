package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for API responses. StorageUnavailable is the
// only kind a caller should retry.
type Kind string

const (
	KindNotAuthorized      Kind = "NOT_AUTHORIZED"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindNotFound           Kind = "NOT_FOUND"
	KindAlreadyCompleted   Kind = "ALREADY_COMPLETED"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != "" {
		return string(e.Kind)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func NotAuthorized(format string, args ...interface{}) *Error {
	return New(KindNotAuthorized, fmt.Errorf(format, args...))
}

func InvalidInput(format string, args ...interface{}) *Error {
	return New(KindInvalidInput, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, fmt.Errorf(format, args...))
}

func AlreadyCompleted(format string, args ...interface{}) *Error {
	return New(KindAlreadyCompleted, fmt.Errorf(format, args...))
}

func StorageUnavailable(err error) *Error {
	return New(KindStorageUnavailable, fmt.Errorf("storage unavailable: %w", err))
}

// KindOf extracts the kind from an error chain, defaulting to
// StorageUnavailable for unclassified failures.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorageUnavailable
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotAuthorized:
		return http.StatusUnauthorized
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyCompleted:
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}
