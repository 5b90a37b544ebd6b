package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error carried through the client.
// HTTPStatus is the status of the upstream API response when one exists,
// zero otherwise.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not shown to the user)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----
// Raised before any network call; always shown inline.

func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- API transport & server rejections (API) ----

// Network wraps a transport-level failure (request never completed).
func Network(err error) *AppError {
	return Wrap("API_001", "Network error. Please check your connection.", 0, err)
}

// Server carries the server-provided message for a non-2xx response.
// Callers substitute their per-action fallback message when the server
// supplied none.
func Server(status int, message string) *AppError {
	return New("API_002", message, status)
}

// ---- Session / authorization state (SES) ----

func ErrNotAuthenticated() *AppError {
	return New("SES_001", "You must be signed in to do that", http.StatusUnauthorized)
}

func ErrSessionExpired() *AppError {
	return New("SES_002", "Your session has expired. Please sign in again", http.StatusUnauthorized)
}

// ---- PIN remediation (PIN) ----

// ErrPinNotConfigured routes the user to PIN setup instead of a generic
// failure screen.
func ErrPinNotConfigured() *AppError {
	return New("PIN_001", "Transaction PIN has not been set up", http.StatusForbidden)
}

// ---- System (SYS) ----

// Internal wraps an unexpected client-side error.
func Internal(err error) *AppError {
	return Wrap("SYS_001", "Something went wrong", http.StatusInternalServerError, err)
}

// ---- Inspection helpers ----

// IsValidation reports whether err is an inline validation error.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == "VAL_001"
}

// PinSetupRequired reports whether err indicates the user has no
// transaction PIN configured.
func PinSetupRequired(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == "PIN_001"
}

// UserMessage extracts the displayable message from err, falling back to
// the given default for non-AppError values.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
