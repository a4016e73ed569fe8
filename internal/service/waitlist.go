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

// JoinResult reports the outcome of a waitlist join. Already is true for
// duplicate joins, which still count as success. Entry is nil when the join
// lost the check-then-create race and the winning row was not re-read.
type JoinResult struct {
	Entry   *entity.WaitlistEntry
	Already bool
}

// WaitlistService runs the waitlist intake pipeline. The waitlist has no
// notification fan-out at all.
type WaitlistService struct {
	repo repository.WaitlistRepository
}

// NewWaitlistService creates a new instance of WaitlistService.
func NewWaitlistService(repo repository.WaitlistRepository) *WaitlistService {
	return &WaitlistService{repo: repo}
}

// Join adds an email to the waitlist. Duplicate joins are idempotent
// successes; the pre-check lookup is best-effort and the unique index is the
// authoritative guard.
func (s *WaitlistService) Join(ctx context.Context, req dto.WaitlistRequest) (*JoinResult, error) {
	input, violations := ValidateWaitlist(req)
	if violations != nil {
		return nil, apperrors.NewValidationError(violations...)
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		return &JoinResult{Entry: existing, Already: true}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("find waitlist entry: %w", err)
	}

	entry, err := s.repo.Create(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return &JoinResult{Already: true}, nil
		}
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}
	log.Printf("waitlist entry created id=%s", entry.ID)

	return &JoinResult{Entry: entry}, nil
}
