package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrAccountNotFound is returned when the user has no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientBalance is returned when account has insufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned when amount is invalid.
	ErrInvalidAmount = errors.New("invalid amount")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// Echo converts the error to an echo.HTTPError, which echo renders as
// {"message": "..."}.
func (e *HTTPError) Echo() *echo.HTTPError {
	return echo.NewHTTPError(e.StatusCode, e.Message)
}

// IsInternal reports whether the error maps to a 5xx response.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, ErrAccountNotFound.Error(), "ACCOUNT_NOT_FOUND")
	case errors.Is(err, ErrInsufficientBalance):
		return NewHTTPError(http.StatusBadRequest, ErrInsufficientBalance.Error(), "INSUFFICIENT_BALANCE")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidAmount.Error(), "INVALID_AMOUNT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal Server Error", "INTERNAL_ERROR")
	}
}
