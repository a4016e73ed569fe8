package dto

import (
	"github.com/octobees/landing-api/internal/entity"
)

// ContactRequest is the raw contact-form payload before validation.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewsletterRequest is the raw newsletter subscription payload.
type NewsletterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// WaitlistRequest is the raw waitlist join payload.
type WaitlistRequest struct {
	Email string `json:"email"`
}

// RequestMeta carries transport-level details recorded on a contact message.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ContactCreated is the public projection returned after a contact submission.
type ContactCreated struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// StatusUpdateRequest patches the workflow status of a contact message.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ContactListFilter narrows and pages the contact listing.
type ContactListFilter struct {
	Status *entity.ContactStatus
	Page   int
	Limit  int
}

// SubscriberListFilter narrows and pages the subscriber listing.
type SubscriberListFilter struct {
	Subscribed bool
	Page       int
	Limit      int
}

// Pagination reports the page window of a listing response.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}
