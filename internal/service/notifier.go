package service

import (
	"context"

	"github.com/octobees/landing-api/internal/entity"
)

// EmailNotifier abstracts the email channel adapter for the intake pipelines.
type EmailNotifier interface {
	SendContactConfirmation(ctx context.Context, contact *entity.Contact) (string, error)
	SendAdminNotification(ctx context.Context, contact *entity.Contact) (string, error)
	SendNewsletterWelcome(ctx context.Context, sub *entity.Subscriber) (string, error)
}

// ChatNotifier abstracts the chat channel adapter for the intake pipelines.
type ChatNotifier interface {
	NotifyContact(ctx context.Context, contact *entity.Contact) (string, error)
	NotifyNewsletter(ctx context.Context, sub *entity.Subscriber) error
}
