package httperr

import (
	"errors"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure the caller is allowed to see: its code and message
// are written to the response as-is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func newError(kind Kind, code, message string) error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func NewValidation(code, message string) error   { return newError(KindValidation, code, message) }
func NewUnauthorized(code, message string) error { return newError(KindUnauthorized, code, message) }
func NewForbidden(code, message string) error    { return newError(KindForbidden, code, message) }
func NewNotFound(code, message string) error     { return newError(KindNotFound, code, message) }
func NewConflict(code, message string) error     { return newError(KindConflict, code, message) }

// ErrBusiness is the short form for a rule violation with no custom message.
func ErrBusiness(code string) error {
	return NewValidation(code, "")
}

// IsBusiness reports whether err carries the given code, whatever its kind.
func IsBusiness(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var e *Error
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &e):
		return e.Kind
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	default:
		return KindInternal
	}
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
