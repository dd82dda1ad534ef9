package apierr

import (
	"errors"
	"net/http"

	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Error carries an HTTP status and a stable machine-readable code alongside
// the wrapped cause.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromDomain maps core sentinel errors onto transport-level errors so
// handlers stay one-liners.
func FromDomain(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrInvalidInput):
		return New(http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, errs.ErrUnsupportedRange):
		return New(http.StatusUnprocessableEntity, "unsupported_range", err)
	case errors.Is(err, errs.ErrPersonalizationConflict):
		return New(http.StatusConflict, "personalization_conflict", err)
	case errors.Is(err, errs.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	default:
		return New(http.StatusInternalServerError, "internal", err)
	}
}
