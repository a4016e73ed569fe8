package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wneessen/go-mail"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/config"
	"github.com/octobees/landing-api/internal/entity"
)

// OutboundEmail is one rendered message handed to a transport.
type OutboundEmail struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// EmailTransport delivers a rendered message and returns its transport id.
type EmailTransport interface {
	Send(ctx context.Context, email OutboundEmail) (string, error)
}

// EmailService renders transactional templates and delivers them through the
// configured provider. Without a usable provider every send is a logged no-op.
type EmailService struct {
	cfg       config.EmailConfig
	transport EmailTransport
}

// EmailOption configures optional dependencies.
type EmailOption func(*EmailService)

// WithTransport overrides the provider-selected transport.
func WithTransport(t EmailTransport) EmailOption {
	return func(s *EmailService) {
		s.transport = t
	}
}

// NewEmailService builds the adapter for the provider named in the config.
func NewEmailService(cfg config.EmailConfig, opts ...EmailOption) *EmailService {
	s := &EmailService{cfg: cfg, transport: newTransport(cfg)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newTransport(cfg config.EmailConfig) EmailTransport {
	switch cfg.Provider {
	case "gmail":
		return newSMTPTransport("smtp.gmail.com", 587, false, cfg.GmailUser, cfg.GmailPass)
	case "sendgrid":
		return &sendgridTransport{client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
	case "smtp":
		return newSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSecure, cfg.SMTPUser, cfg.SMTPPass)
	default:
		log.Printf("warn: no email provider configured, sends will be skipped")
		return nil
	}
}

// SendContactConfirmation emails the submitter that their message arrived.
func (s *EmailService) SendContactConfirmation(ctx context.Context, contact *entity.Contact) (string, error) {
	html := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>Thank you for reaching out!</h2>
          <p>Hi %s,</p>
          <p>We received your message and will get back to you as soon as possible.</p>
          <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
            <h3>Your Submission:</h3>
            <p><strong>Subject:</strong> %s</p>
            <p><strong>Message:</strong> %s</p>
          </div>
          <p>Best regards,<br>The Team</p>
        </div>
    `, contact.Name, contact.Subject, contact.Message)

	return s.send(ctx, OutboundEmail{
		From:    s.cfg.From,
		To:      contact.Email,
		Subject: "We received your message",
		HTML:    html,
	})
}

// SendAdminNotification emails the admin inbox about a new contact message.
func (s *EmailService) SendAdminNotification(ctx context.Context, contact *entity.Contact) (string, error) {
	phone := "N/A"
	if contact.Phone != nil {
		phone = *contact.Phone
	}
	html := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>New Contact Submission</h2>
          <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> %s</p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Subject:</strong> %s</p>
            <p><strong>Message:</strong> %s</p>
            <p><strong>Submitted:</strong> %s</p>
          </div>
        </div>
    `, contact.Name, contact.Email, phone, contact.Subject, contact.Message, contact.CreatedAt.Format(time.RFC1123))

	return s.send(ctx, OutboundEmail{
		From:    s.cfg.From,
		To:      s.cfg.AdminEmail,
		Subject: "New Contact: " + contact.Subject,
		HTML:    html,
	})
}

// SendNewsletterWelcome greets a freshly subscribed reader.
func (s *EmailService) SendNewsletterWelcome(ctx context.Context, sub *entity.Subscriber) (string, error) {
	name := "there"
	if sub.Name != nil {
		name = *sub.Name
	}
	html := fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>Welcome!</h2>
          <p>Hi %s,</p>
          <p>Thank you for subscribing to our newsletter. You'll be the first to know about our latest updates and offers.</p>
          <p>Best regards,<br>The Team</p>
        </div>
    `, name)

	return s.send(ctx, OutboundEmail{
		From:    s.cfg.From,
		To:      sub.Email,
		Subject: "Welcome to our newsletter!",
		HTML:    html,
	})
}

func (s *EmailService) send(ctx context.Context, email OutboundEmail) (string, error) {
	if s.transport == nil {
		log.Printf("warn: email transport not configured, skipping send to=%s", email.To)
		return "", nil
	}

	id, err := s.transport.Send(ctx, email)
	if err != nil {
		return "", &apperrors.TransportError{Channel: "email", Err: err}
	}
	log.Printf("email sent message_id=%s to=%s", id, email.To)
	return id, nil
}

type smtpTransport struct {
	client *mail.Client
}

func newSMTPTransport(host string, port int, ssl bool, user, pass string) EmailTransport {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(pass),
	}
	if ssl {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		log.Printf("warn: smtp client init failed, sends will be skipped: %v", err)
		return nil
	}
	return &smtpTransport{client: client}
}

func (t *smtpTransport) Send(ctx context.Context, email OutboundEmail) (string, error) {
	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return "", fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return "", fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)

	if err := t.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", err
	}
	return msg.GetMessageID(), nil
}

type sendgridTransport struct {
	client *sendgrid.Client
}

func (t *sendgridTransport) Send(ctx context.Context, email OutboundEmail) (string, error) {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail("", email.From),
		email.Subject,
		sgmail.NewEmail("", email.To),
		"",
		email.HTML,
	)

	resp, err := t.client.SendWithContext(ctx, message)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
