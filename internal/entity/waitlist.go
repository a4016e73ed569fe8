package entity

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistEntry represents one email's waitlist membership. Duplicate joins
// are idempotent: the first row wins and later attempts leave it untouched.
type WaitlistEntry struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	JoinedAt  time.Time `json:"joinedAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
