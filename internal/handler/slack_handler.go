package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/slack-go/slack"

	"github.com/octobees/landing-api/internal/config"
	"github.com/octobees/landing-api/internal/notify"
)

// SlackHandler exposes the Slack event callback and the ad hoc message
// endpoint. Like the upstream Slack API itself, responses here are raw
// objects rather than the shared envelope.
type SlackHandler struct {
	cfg     config.SlackConfig
	service *notify.SlackService
}

// NewSlackHandler creates a new handler instance.
func NewSlackHandler(cfg config.SlackConfig, service *notify.SlackService) *SlackHandler {
	return &SlackHandler{cfg: cfg, service: service}
}

// Events handles POST /api/slack/events callbacks. Events are rejected
// outright when no signing secret is configured.
func (h *SlackHandler) Events(c echo.Context) error {
	if h.cfg.SigningSecret == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Not configured"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid body"})
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid body"})
	}

	return c.JSON(http.StatusOK, h.service.HandleEvent(payload))
}

type slackMessageRequest struct {
	Text   string          `json:"text"`
	Blocks json.RawMessage `json:"blocks"`
}

// SendMessage handles POST /api/slack/message, posting an ad hoc message to
// the configured webhook.
func (h *SlackHandler) SendMessage(c echo.Context) error {
	var req slackMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Text == "" && len(req.Blocks) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Text or blocks required"})
	}

	msg := &slack.WebhookMessage{Text: req.Text}
	if len(req.Blocks) > 0 {
		var blocks slack.Blocks
		if err := json.Unmarshal(req.Blocks, &blocks); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid blocks"})
		}
		msg.Blocks = &blocks
	}

	result, err := h.service.SendWebhookMessage(c.Request().Context(), msg)
	if err != nil {
		c.Logger().Errorf("slack message failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send message"})
	}
	if result == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Not configured"})
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true, "ts": result.TS})
}
