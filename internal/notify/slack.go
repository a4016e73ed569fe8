package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/config"
	"github.com/octobees/landing-api/internal/entity"
)

const defaultSlackTimeout = 15 * time.Second

// WebhookResult is the webhook endpoint's answer. Incoming webhooks usually
// reply with a plain "ok" body; a ts field is captured when present so it can
// serve as the external notification id.
type WebhookResult struct {
	Body string `json:"-"`
	TS   string `json:"ts"`
}

// SlackService is the chat channel adapter. The webhook and the bot token are
// configured independently; whichever is missing turns its calls into no-ops.
type SlackService struct {
	webhookURL string
	client     *slack.Client
	httpClient *http.Client
}

// SlackOption configures optional dependencies.
type SlackOption func(*SlackService)

// WithHTTPClient overrides the webhook HTTP client.
func WithHTTPClient(client *http.Client) SlackOption {
	return func(s *SlackService) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// NewSlackService builds the adapter from configuration.
func NewSlackService(cfg config.SlackConfig, opts ...SlackOption) *SlackService {
	s := &SlackService{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: defaultSlackTimeout},
	}
	if cfg.BotToken != "" {
		s.client = slack.New(cfg.BotToken)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendWebhookMessage posts a message to the configured webhook and returns
// the endpoint's response. Returns (nil, nil) when no webhook is configured.
func (s *SlackService) SendWebhookMessage(ctx context.Context, msg *slack.WebhookMessage) (*WebhookResult, error) {
	if s.webhookURL == "" {
		log.Printf("warn: slack webhook URL not configured, skipping message")
		return nil, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Channel: "slack", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, &apperrors.TransportError{Channel: "slack", Err: fmt.Errorf("webhook status %d: %s", resp.StatusCode, body)}
	}

	result := &WebhookResult{Body: string(body)}
	_ = json.Unmarshal(body, result)
	log.Printf("slack message sent status=%d", resp.StatusCode)
	return result, nil
}

// NotifyContact formats and posts a contact submission. A non-empty return
// value is the message ts usable as the record's slack message id.
func (s *SlackService) NotifyContact(ctx context.Context, contact *entity.Contact) (string, error) {
	result, err := s.SendWebhookMessage(ctx, FormatContactNotification(contact))
	if err != nil || result == nil {
		return "", err
	}
	return result.TS, nil
}

// NotifyNewsletter formats and posts a newsletter signup summary.
func (s *SlackService) NotifyNewsletter(ctx context.Context, sub *entity.Subscriber) error {
	_, err := s.SendWebhookMessage(ctx, FormatNewsletterNotification(sub))
	return err
}

// SendDirectMessage posts a direct message through the bot API.
// Returns ("", nil) when no bot token is configured.
func (s *SlackService) SendDirectMessage(ctx context.Context, userID, text string) (string, error) {
	if s.client == nil {
		log.Printf("warn: slack bot token not configured, skipping direct message")
		return "", nil
	}

	_, ts, err := s.client.PostMessageContext(ctx, userID, slack.MsgOptionText(text, false))
	if err != nil {
		return "", &apperrors.TransportError{Channel: "slack", Err: err}
	}
	return ts, nil
}

// AddReaction attaches an emoji reaction to an existing message.
// A no-op without a bot token.
func (s *SlackService) AddReaction(ctx context.Context, channel, timestamp, emoji string) error {
	if s.client == nil {
		log.Printf("warn: slack bot token not configured, skipping reaction")
		return nil
	}

	if err := s.client.AddReactionContext(ctx, emoji, slack.NewRefToMessage(channel, timestamp)); err != nil {
		return &apperrors.TransportError{Channel: "slack", Err: err}
	}
	return nil
}

// HandleEvent answers Slack's event subscription callbacks. A
// url_verification challenge is echoed back; everything else is acknowledged.
func (s *SlackService) HandleEvent(payload map[string]any) map[string]any {
	eventType, _ := payload["type"].(string)
	log.Printf("slack event received type=%s", eventType)

	switch eventType {
	case "url_verification":
		return map[string]any{"challenge": payload["challenge"]}
	case "event_callback":
		if inner, ok := payload["event"].(map[string]any); ok {
			innerType, _ := inner["type"].(string)
			log.Printf("slack inner event type=%s", innerType)
		}
	}

	return map[string]any{"ok": true}
}

// FormatContactNotification builds the block layout for a contact submission.
func FormatContactNotification(contact *entity.Contact) *slack.WebhookMessage {
	phone := "N/A"
	if contact.Phone != nil {
		phone = *contact.Phone
	}

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Name:*\n"+contact.Name, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Email:*\n"+contact.Email, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Phone:*\n"+phone, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Subject:*\n"+contact.Subject, false, false),
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "📬 New Contact Submission", true, false)),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "*Message:*\n"+contact.Message, false, false), nil, nil),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, "Submitted at: "+contact.CreatedAt.Format(time.RFC1123), false, false)),
		slack.NewActionBlock("",
			slack.NewButtonBlockElement("view_contact", contact.ID.String(),
				slack.NewTextBlockObject(slack.PlainTextType, "View in Dashboard", true, false))),
	}

	return &slack.WebhookMessage{
		Text:   "New Contact Submission from " + contact.Name,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}

// FormatNewsletterNotification builds the summary block for a new subscriber.
func FormatNewsletterNotification(sub *entity.Subscriber) *slack.WebhookMessage {
	name := "Not provided"
	if sub.Name != nil {
		name = *sub.Name
	}

	text := fmt.Sprintf("📧 *New Newsletter Subscriber*\n\nEmail: %s\nName: %s\nTime: %s",
		sub.Email, name, sub.CreatedAt.Format(time.RFC1123))

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
	}

	return &slack.WebhookMessage{
		Text:   "New Newsletter Subscriber: " + sub.Email,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}
