package errors

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the wire representation of an error. Hints become
// the user-facing message; the raw error string is kept as internal detail.
func NewErrorResponse(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	display := strings.Join(errors.GetAllHints(err), "; ")
	if display == "" {
		display = "something went wrong"
	}

	return &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Display:       display,
			InternalError: err.Error(),
		},
	}
}
