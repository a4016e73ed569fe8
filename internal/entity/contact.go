package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContactStatus is the closed set of workflow states for a contact message.
type ContactStatus string

const (
	StatusNew        ContactStatus = "new"
	StatusRead       ContactStatus = "read"
	StatusInProgress ContactStatus = "in-progress"
	StatusResolved   ContactStatus = "resolved"
)

// ParseContactStatus converts a raw string into a ContactStatus or fails.
func ParseContactStatus(raw string) (ContactStatus, error) {
	switch ContactStatus(raw) {
	case StatusNew, StatusRead, StatusInProgress, StatusResolved:
		return ContactStatus(raw), nil
	default:
		return "", fmt.Errorf("invalid contact status: %q", raw)
	}
}

// ContactSource records which entry point produced a contact message.
type ContactSource string

const (
	SourceContactForm ContactSource = "contact-form"
	SourceNewsletter  ContactSource = "newsletter"
	SourceAPI         ContactSource = "api"
)

// Contact represents one inbound contact-form message.
//
// JSON tags follow the field names the existing frontend clients already
// consume, camelCase included.
type Contact struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          *string       `json:"phone,omitempty"`
	PhoneE164      *string       `json:"phoneE164,omitempty"`
	Subject        string        `json:"subject"`
	Message        string        `json:"message"`
	Status         ContactStatus `json:"status"`
	Source         ContactSource `json:"source"`
	SlackMessageID *string       `json:"slackMessageId"`
	IPAddress      *string       `json:"ipAddress,omitempty"`
	UserAgent      *string       `json:"userAgent,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
