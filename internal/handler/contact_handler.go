package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
	"github.com/octobees/landing-api/internal/service"
)

// ContactHandler exposes the contact intake and admin endpoints.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new handler instance.
func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /api/contact requests.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	meta := dto.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	created, err := h.service.Submit(c.Request().Context(), req, meta)
	if err != nil {
		var vErr *apperrors.ValidationError
		if errors.As(err, &vErr) {
			return ValidationFailed(c, vErr.Errors)
		}
		return err
	}

	return Success(c, http.StatusCreated, "Contact submitted successfully", created)
}

// List handles GET /api/contact requests.
func (h *ContactHandler) List(c echo.Context) error {
	filter := dto.ContactListFilter{
		Page:  parseIntDefault(c.QueryParam("page"), 1),
		Limit: parseIntDefault(c.QueryParam("limit"), 10),
	}

	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status, err := entity.ParseContactStatus(raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "Invalid status")
		}
		filter.Status = &status
	}

	contacts, pagination, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []entity.Contact{}
	}

	return SuccessPage(c, contacts, pagination)
}

// Get handles GET /api/contact/:id requests.
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "Invalid contact id")
	}

	contact, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Error(c, http.StatusNotFound, "Contact not found")
		}
		return err
	}

	return Success(c, http.StatusOK, "", contact)
}

// UpdateStatus handles PATCH /api/contact/:id/status requests.
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "Invalid contact id")
	}

	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid status")
	}
	status, err := entity.ParseContactStatus(req.Status)
	if err != nil {
		return Error(c, http.StatusBadRequest, "Invalid status")
	}

	contact, err := h.service.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Error(c, http.StatusNotFound, "Contact not found")
		}
		return err
	}

	return Success(c, http.StatusOK, "", contact)
}

// Delete handles DELETE /api/contact/:id requests.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "Invalid contact id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return Error(c, http.StatusNotFound, "Contact not found")
		}
		return err
	}

	return Success(c, http.StatusOK, "Contact deleted successfully", nil)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
