// Package apperr carries the application error taxonomy: every failure a
// handler can surface maps to one kind, and every kind maps to one HTTP
// status. Storage errors stay untyped and come out as 500.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnauthenticated Kind = iota // bad credentials
	KindForbidden                   // authorization failure
	KindNotFound                    // missing user/group
	KindConflict                    // duplicate username
	KindInvalid                     // bad request payload
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Unauthenticated(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Invalid(message string) error {
	return &Error{Kind: KindInvalid, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps an error to its response status. Untyped errors are
// treated as internal failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
