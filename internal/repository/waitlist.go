package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/entity"
)

// WaitlistRepository describes persistence operations for waitlist entries.
type WaitlistRepository interface {
	Create(ctx context.Context, email string) (*entity.WaitlistEntry, error)
	FindByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error)
}

// PGXWaitlistRepository implements WaitlistRepository using pgx.
type PGXWaitlistRepository struct {
	pool pgxPool
}

// NewPGXWaitlistRepository wires a pgx backed waitlist repository.
func NewPGXWaitlistRepository(pool *pgxpool.Pool) *PGXWaitlistRepository {
	return &PGXWaitlistRepository{pool: pool}
}

// Create inserts a waitlist entry. The unique index on email is the
// authoritative guard against duplicate joins; a violation surfaces as
// apperrors.ErrDuplicate so the caller can treat the join as idempotent.
func (r *PGXWaitlistRepository) Create(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO waitlist_entries (email)
        VALUES ($1)
        RETURNING id, email, joined_at, created_at, updated_at
    `, email)

	var entry entity.WaitlistEntry
	if err := row.Scan(&entry.ID, &entry.Email, &entry.JoinedAt, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, email)
		}
		return nil, fmt.Errorf("insert waitlist entry: %w", err)
	}
	return &entry, nil
}

// FindByEmail fetches a waitlist entry by email if present.
func (r *PGXWaitlistRepository) FindByEmail(ctx context.Context, email string) (*entity.WaitlistEntry, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, joined_at, created_at, updated_at FROM waitlist_entries WHERE email = $1`, email)

	var entry entity.WaitlistEntry
	if err := row.Scan(&entry.ID, &entry.Email, &entry.JoinedAt, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("query waitlist entry by email: %w", err)
	}
	return &entry, nil
}
