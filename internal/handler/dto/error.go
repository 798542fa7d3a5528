package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/taskdesk/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and an error body.
func MapDomainError(err error) (int, ErrorResponse) {
	message := err.Error()

	switch {
	case errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest, NewErrorResponse("INVALID_JSON", message)

	case errors.Is(err, domain.ErrValidation):
		resp := NewErrorResponse("VALIDATION_ERROR", message)
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			resp.Error.Field = verr.Field
		}
		return http.StatusUnprocessableEntity, resp

	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, NewErrorResponse("TASK_NOT_FOUND", message)

	case errors.Is(err, domain.ErrPersistence):
		slog.Error("persistence failure", "error", err)
		return http.StatusServiceUnavailable, NewErrorResponse("PERSISTENCE_ERROR", "Database unavailable")

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, NewErrorResponse("INTERNAL_ERROR", "Internal server error")
	}
}
