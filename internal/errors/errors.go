package errors

import (
	"net/http"
)

// APIError represents a structured error for API responses.
// Includes a code, message, and HTTP status for consistent error handling.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError with the given code, message, and status.
func NewAPIError(code, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status}
}

// Predefined API errors for common scenarios.
var (
	ErrInvalidBody    = NewAPIError("invalid_body_format", "unable to parse the request body", http.StatusUnprocessableEntity)
	ErrInvalidToken   = NewAPIError("invalid_token", "Invalid token", http.StatusUnauthorized)
	ErrExpiredToken   = NewAPIError("expired_token", "Expired token", http.StatusUnauthorized)
	ErrMissingCode    = NewAPIError("missing_code", "the callback is missing the authorization code", http.StatusBadRequest)
	ErrMissingState   = NewAPIError("missing_state", "the callback is missing the state parameter", http.StatusBadRequest)
	ErrAccessDenied   = NewAPIError("access_denied", "the user denied the authorization request", http.StatusBadRequest)
	ErrNotFound       = NewAPIError("not_found", "Resource not found", http.StatusNotFound)
	ErrInternalServer = NewAPIError("internal_error", "Internal server error", http.StatusInternalServerError)
)
