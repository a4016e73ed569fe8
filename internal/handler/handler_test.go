package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
)

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type memContactsRepo struct {
	contacts  map[uuid.UUID]*entity.Contact
	slackIDs  map[uuid.UUID]string
	createErr error
}

func newMemContactsRepo() *memContactsRepo {
	return &memContactsRepo{
		contacts: map[uuid.UUID]*entity.Contact{},
		slackIDs: map[uuid.UUID]string{},
	}
}

func (r *memContactsRepo) Create(_ context.Context, contact *entity.Contact) error {
	if r.createErr != nil {
		return r.createErr
	}
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	r.contacts[contact.ID] = contact
	return nil
}

func (r *memContactsRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (r *memContactsRepo) List(_ context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error) {
	var out []entity.Contact
	for _, contact := range r.contacts {
		if filter.Status != nil && contact.Status != *filter.Status {
			continue
		}
		out = append(out, *contact)
	}
	return out, len(out), nil
}

func (r *memContactsRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ContactStatus) (*entity.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	contact.Status = status
	return contact, nil
}

func (r *memContactsRepo) SetSlackMessageID(_ context.Context, id uuid.UUID, messageID string) error {
	r.slackIDs[id] = messageID
	return nil
}

func (r *memContactsRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.contacts[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

type memSubscribersRepo struct {
	subs map[string]*entity.Subscriber
}

func newMemSubscribersRepo() *memSubscribersRepo {
	return &memSubscribersRepo{subs: map[string]*entity.Subscriber{}}
}

func (r *memSubscribersRepo) Create(_ context.Context, sub *entity.Subscriber) error {
	if _, ok := r.subs[sub.Email]; ok {
		return apperrors.ErrDuplicate
	}
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()
	r.subs[sub.Email] = sub
	return nil
}

func (r *memSubscribersRepo) FindByEmail(_ context.Context, email string) (*entity.Subscriber, error) {
	sub, ok := r.subs[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return sub, nil
}

func (r *memSubscribersRepo) List(_ context.Context, filter dto.SubscriberListFilter) ([]entity.SubscriberSummary, int, error) {
	var out []entity.SubscriberSummary
	for _, sub := range r.subs {
		if sub.Subscribed != filter.Subscribed {
			continue
		}
		out = append(out, entity.SubscriberSummary{Email: sub.Email, Name: sub.Name, CreatedAt: sub.CreatedAt})
	}
	return out, len(out), nil
}

func (r *memSubscribersRepo) Resubscribe(_ context.Context, email string) (*entity.Subscriber, error) {
	sub, ok := r.subs[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	sub.Subscribed = true
	return sub, nil
}

func (r *memSubscribersRepo) Unsubscribe(_ context.Context, email string) (*entity.Subscriber, error) {
	sub, ok := r.subs[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	sub.Subscribed = false
	return sub, nil
}

type memWaitlistRepo struct {
	entries map[string]*entity.WaitlistEntry
	findErr error
}

func newMemWaitlistRepo() *memWaitlistRepo {
	return &memWaitlistRepo{entries: map[string]*entity.WaitlistEntry{}}
}

func (r *memWaitlistRepo) Create(_ context.Context, email string) (*entity.WaitlistEntry, error) {
	if _, ok := r.entries[email]; ok {
		return nil, apperrors.ErrDuplicate
	}
	entry := &entity.WaitlistEntry{ID: uuid.New(), Email: email, CreatedAt: time.Now()}
	r.entries[email] = entry
	return entry, nil
}

func (r *memWaitlistRepo) FindByEmail(_ context.Context, email string) (*entity.WaitlistEntry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	entry, ok := r.entries[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

type noopEmailNotifier struct{}

func (noopEmailNotifier) SendContactConfirmation(context.Context, *entity.Contact) (string, error) {
	return "", nil
}

func (noopEmailNotifier) SendAdminNotification(context.Context, *entity.Contact) (string, error) {
	return "", nil
}

func (noopEmailNotifier) SendNewsletterWelcome(context.Context, *entity.Subscriber) (string, error) {
	return "", nil
}

type noopChatNotifier struct{}

func (noopChatNotifier) NotifyContact(context.Context, *entity.Contact) (string, error) {
	return "", nil
}

func (noopChatNotifier) NotifyNewsletter(context.Context, *entity.Subscriber) error {
	return nil
}
