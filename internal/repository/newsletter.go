package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
)

const subscriberColumns = `id, email, name, subscribed, verified, verification_token, verified_at, unsubscribe_token, tags, metadata, created_at, updated_at`

// SubscribersRepository describes persistence operations for newsletter subscribers.
type SubscribersRepository interface {
	Create(ctx context.Context, sub *entity.Subscriber) error
	FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error)
	List(ctx context.Context, filter dto.SubscriberListFilter) ([]entity.SubscriberSummary, int, error)
	Resubscribe(ctx context.Context, email string) (*entity.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) (*entity.Subscriber, error)
}

// PGXSubscribersRepository implements SubscribersRepository using pgx.
type PGXSubscribersRepository struct {
	pool pgxPool
}

// NewPGXSubscribersRepository wires a pgx backed subscribers repository.
func NewPGXSubscribersRepository(pool *pgxpool.Pool) *PGXSubscribersRepository {
	return &PGXSubscribersRepository{pool: pool}
}

// Create inserts a new subscriber row. A concurrent insert for the same email
// surfaces as apperrors.ErrDuplicate via the unique index on email.
func (r *PGXSubscribersRepository) Create(ctx context.Context, sub *entity.Subscriber) error {
	if sub == nil {
		return fmt.Errorf("subscriber payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO newsletter_subscribers (email, name, subscribed, verified, verification_token, unsubscribe_token, tags, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `, sub.Email, sub.Name, sub.Subscribed, sub.Verified, sub.VerificationToken, sub.UnsubscribeToken, sub.Tags, sub.Metadata)

	if err := row.Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, sub.Email)
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// FindByEmail fetches a subscriber by email if present.
func (r *PGXSubscribersRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subscriberColumns+` FROM newsletter_subscribers WHERE email = $1`, email)

	sub, err := scanSubscriber(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("query subscriber by email: %w", err)
	}
	return sub, nil
}

// List returns a page of subscriber summaries plus the filter-wide total.
// Only email, name and created_at are projected.
func (r *PGXSubscribersRepository) List(ctx context.Context, filter dto.SubscriberListFilter) ([]entity.SubscriberSummary, int, error) {
	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx, `
        SELECT email, name, created_at FROM newsletter_subscribers
        WHERE subscribed = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, filter.Subscribed, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var summaries []entity.SubscriberSummary
	for rows.Next() {
		var summary entity.SubscriberSummary
		if err := rows.Scan(&summary.Email, &summary.Name, &summary.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan subscriber row: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate subscribers: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM newsletter_subscribers WHERE subscribed = $1`, filter.Subscribed).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count subscribers: %w", err)
	}

	return summaries, total, nil
}

// Resubscribe flips an existing subscriber back to subscribed and verified.
func (r *PGXSubscribersRepository) Resubscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE newsletter_subscribers
        SET subscribed = TRUE, verified = TRUE, verified_at = NOW(), updated_at = NOW()
        WHERE email = $1
        RETURNING `+subscriberColumns, email)

	sub, err := scanSubscriber(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("resubscribe: %w", err)
	}
	return sub, nil
}

// Unsubscribe logically removes a subscriber. The row is never deleted.
func (r *PGXSubscribersRepository) Unsubscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE newsletter_subscribers
        SET subscribed = FALSE, updated_at = NOW()
        WHERE email = $1
        RETURNING `+subscriberColumns, email)

	sub, err := scanSubscriber(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("unsubscribe: %w", err)
	}
	return sub, nil
}

func scanSubscriber(row pgx.Row) (*entity.Subscriber, error) {
	var sub entity.Subscriber
	if err := row.Scan(
		&sub.ID,
		&sub.Email,
		&sub.Name,
		&sub.Subscribed,
		&sub.Verified,
		&sub.VerificationToken,
		&sub.VerifiedAt,
		&sub.UnsubscribeToken,
		&sub.Tags,
		&sub.Metadata,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}
