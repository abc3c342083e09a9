package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// Sentinel errors raised by the engines. Handlers translate them to HTTP
// status codes with ToHTTP; everything else becomes a 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidInput     = errors.New("invalid input")
)

// NotFound wraps ErrNotFound with a subject, e.g. NotFound("patient").
func NotFound(subject string) error {
	return &subjectError{subject: subject, err: ErrNotFound}
}

// Invalid wraps ErrInvalidInput with a subject.
func Invalid(subject string) error {
	return &subjectError{subject: subject, err: ErrInvalidInput}
}

type subjectError struct {
	subject string
	err     error
}

func (e *subjectError) Error() string { return e.subject + " " + e.err.Error() }
func (e *subjectError) Unwrap() error { return e.err }

// FromNoRows translates pgx.ErrNoRows into the given not-found error so the
// repo boundary never leaks driver errors.
func FromNoRows(err error, subject string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(subject)
	}
	return err
}

// ToHTTP maps a domain error onto an echo HTTPError.
func ToHTTP(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCapacityExceeded):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
