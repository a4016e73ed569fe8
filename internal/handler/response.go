package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
)

// APIResponse describes the standard envelope returned by the API. The
// waitlist, health and Slack event endpoints intentionally bypass it: their
// bare shapes predate the envelope and existing clients depend on them.
type APIResponse struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message,omitempty"`
	Data       any                    `json:"data,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
	Pagination *dto.Pagination        `json:"pagination,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessPage sends a successful listing response with pagination metadata.
func SuccessPage(c echo.Context, data any, pagination dto.Pagination) error {
	return c.JSON(http.StatusOK, APIResponse{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
	})
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// ValidationFailed reports a rejected submission with its violation list.
func ValidationFailed(c echo.Context, errs []apperrors.FieldError) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   "Validation failed",
		Errors:  errs,
	})
}
