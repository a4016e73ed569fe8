package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
	"github.com/octobees/landing-api/internal/service"
)

// NewsletterHandler exposes the newsletter subscription endpoints.
type NewsletterHandler struct {
	service *service.NewsletterService
}

// NewNewsletterHandler creates a new handler instance.
func NewNewsletterHandler(service *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

// Subscribe handles POST /api/newsletter requests.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req dto.NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	sub, err := h.service.Subscribe(c.Request().Context(), req)
	if err != nil {
		var vErr *apperrors.ValidationError
		if errors.As(err, &vErr) {
			return ValidationFailed(c, vErr.Errors)
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			return Error(c, http.StatusBadRequest, "Already subscribed to newsletter")
		}
		return err
	}

	return Success(c, http.StatusCreated, "Successfully subscribed to newsletter", map[string]string{"email": sub.Email})
}

// List handles GET /api/newsletter requests. Only active subscribers are
// listed unless subscribed=false is supplied explicitly.
func (h *NewsletterHandler) List(c echo.Context) error {
	filter := dto.SubscriberListFilter{
		Subscribed: true,
		Page:       parseIntDefault(c.QueryParam("page"), 1),
		Limit:      parseIntDefault(c.QueryParam("limit"), 10),
	}
	if strings.TrimSpace(c.QueryParam("subscribed")) == "false" {
		filter.Subscribed = false
	}

	summaries, pagination, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []entity.SubscriberSummary{}
	}

	return SuccessPage(c, summaries, pagination)
}

// Unsubscribe handles DELETE /api/newsletter/:email requests.
func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	email := c.Param("email")

	if _, err := h.service.Unsubscribe(c.Request().Context(), email); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Error(c, http.StatusNotFound, "Subscriber not found")
		}
		return err
	}

	return Success(c, http.StatusOK, "Successfully unsubscribed", nil)
}
