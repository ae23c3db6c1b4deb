package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal error")
)

// Public is an error whose text is safe to return to the caller.
type Public struct {
	Kind error
	Msg  string
}

func (e *Public) Error() string { return e.Msg }

func (e *Public) Unwrap() error { return e.Kind }

// New builds a caller-facing error of the given kind.
func New(kind error, msg string) error {
	return &Public{Kind: kind, Msg: msg}
}

func Validation(msg string) error { return New(ErrValidation, msg) }
func NotFound(msg string) error   { return New(ErrNotFound, msg) }
func Forbidden(msg string) error  { return New(ErrForbidden, msg) }

// Status maps an error to its HTTP status code. Unclassified errors are 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text a caller may see. Internal details never leak.
func Message(err error) string {
	var p *Public
	if errors.As(err, &p) && !errors.Is(p.Kind, ErrInternal) {
		return p.Msg
	}
	return "Internal server error."
}
