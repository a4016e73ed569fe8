package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
	"github.com/octobees/landing-api/internal/entity"
)

// pgxPool is the subset of pgxpool.Pool the repositories rely on.
type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Pages computes the page count for a listing window.
func Pages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

const contactColumns = `id, name, email, phone, phone_e164, subject, message, status, source, slack_message_id, ip_address, user_agent, created_at, updated_at`

// ContactsRepository describes persistence operations for contact messages.
type ContactsRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	List(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) (*entity.Contact, error)
	SetSlackMessageID(ctx context.Context, id uuid.UUID, messageID string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXContactsRepository implements ContactsRepository using pgx.
type PGXContactsRepository struct {
	pool pgxPool
}

// NewPGXContactsRepository wires a pgx backed contacts repository.
func NewPGXContactsRepository(pool *pgxpool.Pool) *PGXContactsRepository {
	return &PGXContactsRepository{pool: pool}
}

// Create inserts a new contact row and fills in generated fields.
func (r *PGXContactsRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}

	status := contact.Status
	if status == "" {
		status = entity.StatusNew
	}
	source := contact.Source
	if source == "" {
		source = entity.SourceContactForm
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO contacts (name, email, phone, phone_e164, subject, message, status, source, ip_address, user_agent)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, status, source, created_at, updated_at
    `, contact.Name, contact.Email, contact.Phone, contact.PhoneE164, contact.Subject, contact.Message, status, source, contact.IPAddress, contact.UserAgent)

	if err := row.Scan(&contact.ID, &contact.Status, &contact.Source, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// FindByID retrieves a contact by identifier.
func (r *PGXContactsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("query contact by id: %w", err)
	}
	return contact, nil
}

// List returns a page of contacts plus the filter-wide total count.
func (r *PGXContactsRepository) List(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error) {
	where := ""
	args := []any{}
	if filter.Status != nil {
		where = " WHERE status = $1"
		args = append(args, *filter.Status)
	}

	offset := (filter.Page - 1) * filter.Limit
	listArgs := append(append([]any{}, args...), filter.Limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM contacts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		contactColumns, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	return contacts, total, nil
}

// UpdateStatus patches the workflow status and returns the updated row.
func (r *PGXContactsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE contacts SET status = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING `+contactColumns, id, status)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("update contact status: %w", err)
	}
	return contact, nil
}

// SetSlackMessageID stores the chat channel's delivery identifier on the row.
func (r *PGXContactsRepository) SetSlackMessageID(ctx context.Context, id uuid.UUID, messageID string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contacts SET slack_message_id = $2, updated_at = NOW() WHERE id = $1`, id, messageID)
	if err != nil {
		return fmt.Errorf("set slack message id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a contact row.
func (r *PGXContactsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var contact entity.Contact
	if err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Phone,
		&contact.PhoneE164,
		&contact.Subject,
		&contact.Message,
		&contact.Status,
		&contact.Source,
		&contact.SlackMessageID,
		&contact.IPAddress,
		&contact.UserAgent,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func scanContacts(rows pgx.Rows) ([]entity.Contact, error) {
	var contacts []entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact row: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}
