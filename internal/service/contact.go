package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
	"github.com/octobees/landing-api/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ContactService runs the contact intake pipeline and the admin operations.
type ContactService struct {
	repo  repository.ContactsRepository
	email EmailNotifier
	chat  ChatNotifier
}

// NewContactService creates a new instance of ContactService.
func NewContactService(repo repository.ContactsRepository, email EmailNotifier, chat ChatNotifier) *ContactService {
	return &ContactService{repo: repo, email: email, chat: chat}
}

// Submit validates, persists and fans out notifications for one contact
// submission. Notification failures are logged and never fail the request;
// a successful chat delivery's ts is written back onto the stored record.
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest, meta dto.RequestMeta) (*dto.ContactCreated, error) {
	input, violations := ValidateContact(req)
	if violations != nil {
		return nil, apperrors.NewValidationError(violations...)
	}

	contact := &entity.Contact{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		PhoneE164: input.PhoneE164,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    entity.StatusNew,
		Source:    entity.SourceContactForm,
	}
	if meta.IPAddress != "" {
		contact.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		contact.UserAgent = &meta.UserAgent
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	log.Printf("contact created id=%s", contact.ID)

	if _, err := s.email.SendContactConfirmation(ctx, contact); err != nil {
		log.Printf("contact confirmation email failed, continuing: %v", err)
	}
	if _, err := s.email.SendAdminNotification(ctx, contact); err != nil {
		log.Printf("admin notification email failed, continuing: %v", err)
	}

	ts, err := s.chat.NotifyContact(ctx, contact)
	if err != nil {
		log.Printf("slack notification failed, continuing: %v", err)
	} else if ts != "" {
		if err := s.repo.SetSlackMessageID(ctx, contact.ID, ts); err != nil {
			log.Printf("recording slack message id failed, continuing: %v", err)
		}
	}

	return &dto.ContactCreated{ID: contact.ID.String(), Email: contact.Email}, nil
}

// List returns a page of contacts respecting pagination defaults.
func (s *ContactService) List(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, dto.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}

	contacts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	return contacts, dto.Pagination{
		Total: total,
		Page:  filter.Page,
		Pages: repository.Pages(total, filter.Limit),
	}, nil
}

// Get fetches a single contact by id.
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateStatus patches the workflow status of a contact.
func (s *ContactService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) (*entity.Contact, error) {
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes a contact.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
