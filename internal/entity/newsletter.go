package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber represents one email's newsletter subscription state.
// Unsubscribing is logical only: subscribed flips to false, the row stays.
type Subscriber struct {
	ID                uuid.UUID      `json:"id"`
	Email             string         `json:"email"`
	Name              *string        `json:"name,omitempty"`
	Subscribed        bool           `json:"subscribed"`
	Verified          bool           `json:"verified"`
	VerificationToken *string        `json:"-"`
	VerifiedAt        *time.Time     `json:"verifiedAt,omitempty"`
	UnsubscribeToken  *string        `json:"-"`
	Tags              []string       `json:"tags,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// SubscriberSummary is the projection exposed by the subscriber listing.
type SubscriberSummary struct {
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
