package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
)

type fakeSubscribersRepo struct {
	byEmail map[string]*entity.Subscriber

	created   []*entity.Subscriber
	createErr error

	summaries  []entity.SubscriberSummary
	total      int
	lastFilter dto.SubscriberListFilter
}

func (f *fakeSubscribersRepo) Create(ctx context.Context, sub *entity.Subscriber) error {
	if f.createErr != nil {
		return f.createErr
	}
	sub.ID = uuid.New()
	if f.byEmail == nil {
		f.byEmail = map[string]*entity.Subscriber{}
	}
	f.byEmail[sub.Email] = sub
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeSubscribersRepo) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	if sub, ok := f.byEmail[email]; ok {
		return sub, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSubscribersRepo) List(ctx context.Context, filter dto.SubscriberListFilter) ([]entity.SubscriberSummary, int, error) {
	f.lastFilter = filter
	return f.summaries, f.total, nil
}

func (f *fakeSubscribersRepo) Resubscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	sub, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	sub.Subscribed = true
	sub.Verified = true
	return sub, nil
}

func (f *fakeSubscribersRepo) Unsubscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	sub, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	sub.Subscribed = false
	return sub, nil
}

func TestNewsletterService_Subscribe_New(t *testing.T) {
	repo := &fakeSubscribersRepo{}
	email := &fakeEmailNotifier{}
	chat := &fakeChatNotifier{}
	svc := NewNewsletterService(repo, email, chat)

	sub, err := svc.Subscribe(context.Background(), dto.NewsletterRequest{Email: "Reader@Example.com", Name: "Jane"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Email != "reader@example.com" {
		t.Fatalf("expected normalized email, got %s", sub.Email)
	}
	if !sub.Subscribed || !sub.Verified {
		t.Fatalf("expected subscribed and verified, got %+v", sub)
	}
	if email.welcomes != 1 || chat.newsletters != 1 {
		t.Fatalf("expected welcome email and chat summary attempted")
	}
}

func TestNewsletterService_Subscribe_DuplicateActive(t *testing.T) {
	repo := &fakeSubscribersRepo{byEmail: map[string]*entity.Subscriber{
		"reader@example.com": {Email: "reader@example.com", Subscribed: true},
	}}
	email := &fakeEmailNotifier{}
	chat := &fakeChatNotifier{}
	svc := NewNewsletterService(repo, email, chat)

	_, err := svc.Subscribe(context.Background(), dto.NewsletterRequest{Email: "reader@example.com"})
	if !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("duplicate subscription must not create a second record")
	}
	if email.welcomes != 0 || chat.newsletters != 0 {
		t.Fatalf("duplicate subscription must not notify")
	}
}

func TestNewsletterService_Subscribe_Resubscribe(t *testing.T) {
	repo := &fakeSubscribersRepo{byEmail: map[string]*entity.Subscriber{
		"reader@example.com": {Email: "reader@example.com", Subscribed: false},
	}}
	email := &fakeEmailNotifier{}
	svc := NewNewsletterService(repo, email, &fakeChatNotifier{})

	sub, err := svc.Subscribe(context.Background(), dto.NewsletterRequest{Email: "reader@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sub.Subscribed || !sub.Verified {
		t.Fatalf("expected flip back to subscribed+verified, got %+v", sub)
	}
	if len(repo.created) != 0 {
		t.Fatalf("resubscription must reuse the existing record")
	}
	if email.welcomes != 1 {
		t.Fatalf("expected welcome email on resubscribe")
	}
}

func TestNewsletterService_Subscribe_RaceMapsToDuplicate(t *testing.T) {
	// pre-check misses, insert loses against a concurrent subscriber
	repo := &fakeSubscribersRepo{createErr: apperrors.ErrDuplicate}
	svc := NewNewsletterService(repo, &fakeEmailNotifier{}, &fakeChatNotifier{})

	_, err := svc.Subscribe(context.Background(), dto.NewsletterRequest{Email: "reader@example.com"})
	if !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("expected duplicate outcome from 23505 race, got %v", err)
	}
}

func TestNewsletterService_Subscribe_Validation(t *testing.T) {
	repo := &fakeSubscribersRepo{}
	svc := NewNewsletterService(repo, &fakeEmailNotifier{}, &fakeChatNotifier{})

	_, err := svc.Subscribe(context.Background(), dto.NewsletterRequest{Email: "bogus"})
	var vErr *apperrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("validation failure must not persist")
	}
}

func TestNewsletterService_Subscribe_NotificationFailuresAreNotFatal(t *testing.T) {
	repo := &fakeSubscribersRepo{}
	email := &fakeEmailNotifier{err: errors.New("smtp down")}
	chat := &fakeChatNotifier{err: errors.New("webhook down")}
	svc := NewNewsletterService(repo, email, chat)

	sub, err := svc.Subscribe(context.Background(), dto.NewsletterRequest{Email: "reader@example.com"})
	if err != nil {
		t.Fatalf("notification failures must not fail the request: %v", err)
	}
	if sub == nil || len(repo.created) != 1 {
		t.Fatalf("expected subscriber persisted despite channel failures")
	}
}

func TestNewsletterService_List_Defaults(t *testing.T) {
	repo := &fakeSubscribersRepo{summaries: make([]entity.SubscriberSummary, 10), total: 15}
	svc := NewNewsletterService(repo, &fakeEmailNotifier{}, &fakeChatNotifier{})

	_, page, err := svc.List(context.Background(), dto.SubscriberListFilter{Subscribed: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 10 || !repo.lastFilter.Subscribed {
		t.Fatalf("unexpected filter: %+v", repo.lastFilter)
	}
	if page.Total != 15 || page.Pages != 2 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	repo := &fakeSubscribersRepo{byEmail: map[string]*entity.Subscriber{
		"reader@example.com": {Email: "reader@example.com", Subscribed: true},
	}}
	svc := NewNewsletterService(repo, &fakeEmailNotifier{}, &fakeChatNotifier{})

	sub, err := svc.Unsubscribe(context.Background(), "Reader@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Subscribed {
		t.Fatalf("expected logical unsubscribe")
	}

	if _, err := svc.Unsubscribe(context.Background(), "ghost@example.com"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
