package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
	"github.com/octobees/landing-api/internal/repository"
)

// NewsletterService runs the newsletter intake pipeline.
type NewsletterService struct {
	repo  repository.SubscribersRepository
	email EmailNotifier
	chat  ChatNotifier
}

// NewNewsletterService creates a new instance of NewsletterService.
func NewNewsletterService(repo repository.SubscribersRepository, email EmailNotifier, chat ChatNotifier) *NewsletterService {
	return &NewsletterService{repo: repo, email: email, chat: chat}
}

// Subscribe validates and records a subscription. An active subscriber is
// rejected as a duplicate; an unsubscribed one is flipped back in place.
// The unique index backstops the check-then-create race: a duplicate-key
// insert maps to the same duplicate outcome as the pre-check hit.
func (s *NewsletterService) Subscribe(ctx context.Context, req dto.NewsletterRequest) (*entity.Subscriber, error) {
	input, violations := ValidateNewsletter(req)
	if violations != nil {
		return nil, apperrors.NewValidationError(violations...)
	}

	sub, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		if sub.Subscribed {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, input.Email)
		}
		sub, err = s.repo.Resubscribe(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("resubscribe: %w", err)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		sub = &entity.Subscriber{
			Email:      input.Email,
			Name:       input.Name,
			Subscribed: true,
			Verified:   true,
		}
		if err := s.repo.Create(ctx, sub); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return nil, err
			}
			return nil, fmt.Errorf("create subscriber: %w", err)
		}
	default:
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	log.Printf("newsletter subscriber added id=%s", sub.ID)

	if _, err := s.email.SendNewsletterWelcome(ctx, sub); err != nil {
		log.Printf("welcome email failed, continuing: %v", err)
	}
	if err := s.chat.NotifyNewsletter(ctx, sub); err != nil {
		log.Printf("slack notification failed, continuing: %v", err)
	}

	return sub, nil
}

// List returns a page of subscriber summaries respecting pagination defaults.
func (s *NewsletterService) List(ctx context.Context, filter dto.SubscriberListFilter) ([]entity.SubscriberSummary, dto.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}

	summaries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	return summaries, dto.Pagination{
		Total: total,
		Page:  filter.Page,
		Pages: repository.Pages(total, filter.Limit),
	}, nil
}

// Unsubscribe logically removes a subscriber; the row is kept.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	return s.repo.Unsubscribe(ctx, NormalizeEmail(email))
}
