package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/service"
)

// WaitlistHandler exposes the waitlist endpoint. Its responses use bare
// {message, ...} bodies rather than the shared envelope, matching the shape
// the landing pages already consume, and errors are rendered locally instead
// of being handed to the global error handler.
type WaitlistHandler struct {
	service *service.WaitlistService
}

// NewWaitlistHandler creates a new handler instance.
func NewWaitlistHandler(service *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{service: service}
}

// Join handles POST /api/waitlist requests.
func (h *WaitlistHandler) Join(c echo.Context) error {
	var req dto.WaitlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Email is required"})
	}

	result, err := h.service.Join(c.Request().Context(), req)
	if err != nil {
		var vErr *apperrors.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": vErr.Errors[0].Message})
		}
		c.Logger().Errorf("waitlist join failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Something went wrong"})
	}

	if result.Already {
		if result.Entry != nil {
			return c.JSON(http.StatusOK, map[string]string{
				"message": "You're already on the waitlist",
				"email":   result.Entry.Email,
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Email already registered"})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "Successfully joined the waitlist",
		"email":   result.Entry.Email,
	})
}
