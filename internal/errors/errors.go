package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when a submission is missing required fields
	// or carries malformed values.
	ErrValidation = errors.New("validation failed")
	// ErrManagerOnly is returned when a non-manager attempts a manager-only
	// operation.
	ErrManagerOnly = errors.New("manager access required")
	// ErrRequestNotFound is returned when a travel request id is unknown or
	// not visible to the caller.
	ErrRequestNotFound = errors.New("travel request not found")
	// ErrInvalidTransition is returned when a status change is not one of
	// the allowed edges.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Validation errors are
// usually wrapped with the offending field, so matching is by errors.Is.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, ErrManagerOnly):
		return NewHTTPError(http.StatusForbidden, err.Error(), "MANAGER_ONLY")
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
