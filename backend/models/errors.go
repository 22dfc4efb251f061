package models

import "errors"

// Sentinel errors shared by repositories, guards and the media store.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrDuplicateReview = errors.New("duplicate review")
	ErrTooLarge        = errors.New("payload too large")
)

// Error carries a client-facing message and unwraps to one of the sentinels.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error { return NewError(ErrNotFound, message) }

func Forbidden(message string) *Error { return NewError(ErrForbidden, message) }

func BadRequest(message string) *Error { return NewError(ErrBadRequest, message) }
