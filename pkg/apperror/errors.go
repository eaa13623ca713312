package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
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

const (
	CodeValidation    = "TRK_001"
	CodeNotFound      = "TRK_002"
	CodeAlreadyExists = "TRK_003"
	CodeRateLimited   = "RATE_001"
	CodeBodyTooLarge  = "REQ_001"
	CodeInternal      = "SYS_000"
	CodeUnavailable   = "SYS_001"
)

// ---- Payment tracking (TRK) ----

// Validation returns a TRK_001 error for input rejected before any I/O.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrPaymentNotFound(paymentID string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("payment %s not found", paymentID), http.StatusNotFound)
}

func ErrPaymentAlreadyExists(paymentID string) *AppError {
	return New(CodeAlreadyExists, fmt.Sprintf("payment %s is already registered", paymentID), http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Request (REQ) ----

func ErrBodyTooLarge(limit int64) *AppError {
	return New(CodeBodyTooLarge, fmt.Sprintf("request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ---- System & Infrastructure (SYS) ----

// TrackerUnavailable wraps a backend connectivity or operational failure.
func TrackerUnavailable(err error) *AppError {
	return Wrap(CodeUnavailable, "Payment tracker backend unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_000 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsValidation(err error) bool    { return HasCode(err, CodeValidation) }
func IsNotFound(err error) bool      { return HasCode(err, CodeNotFound) }
func IsAlreadyExists(err error) bool { return HasCode(err, CodeAlreadyExists) }
func IsUnavailable(err error) bool   { return HasCode(err, CodeUnavailable) }
