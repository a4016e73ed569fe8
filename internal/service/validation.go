package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/octobees/landing-api/internal/apperrors"
	"github.com/octobees/landing-api/internal/dto"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "US"

// ContactInput is a contact submission after validation and normalization.
type ContactInput struct {
	Name      string
	Email     string
	Phone     *string
	PhoneE164 *string
	Subject   string
	Message   string
}

// NewsletterInput is a newsletter subscription after validation.
type NewsletterInput struct {
	Email string
	Name  *string
}

// WaitlistInput is a waitlist join after validation.
type WaitlistInput struct {
	Email string
}

// ValidateContact checks a raw contact payload against the form rules.
// It returns either normalized values or the ordered violation list, never
// both. Length bounds count characters, not bytes.
func ValidateContact(req dto.ContactRequest) (ContactInput, []apperrors.FieldError) {
	var violations []apperrors.FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		violations = append(violations, apperrors.FieldError{Field: "name", Message: "Name is required"})
	} else if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		violations = append(violations, apperrors.FieldError{Field: "name", Message: "Name must be 2-100 characters"})
	}

	email := strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(email) {
		violations = append(violations, apperrors.FieldError{Field: "email", Message: "Valid email is required"})
	}

	phone := strings.TrimSpace(req.Phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		violations = append(violations, apperrors.FieldError{Field: "phone", Message: "Invalid phone format"})
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		violations = append(violations, apperrors.FieldError{Field: "subject", Message: "Subject is required"})
	} else if n := utf8.RuneCountInString(subject); n < 3 || n > 200 {
		violations = append(violations, apperrors.FieldError{Field: "subject", Message: "Subject must be 3-200 characters"})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		violations = append(violations, apperrors.FieldError{Field: "message", Message: "Message is required"})
	} else if n := utf8.RuneCountInString(message); n < 10 || n > 5000 {
		violations = append(violations, apperrors.FieldError{Field: "message", Message: "Message must be 10-5000 characters"})
	}

	if len(violations) > 0 {
		return ContactInput{}, violations
	}

	input := ContactInput{
		Name:    name,
		Email:   NormalizeEmail(email),
		Subject: subject,
		Message: message,
	}
	if phone != "" {
		input.Phone = &phone
		input.PhoneE164 = normalizePhone(phone)
	}
	return input, nil
}

// ValidateNewsletter checks a raw newsletter subscription payload.
func ValidateNewsletter(req dto.NewsletterRequest) (NewsletterInput, []apperrors.FieldError) {
	var violations []apperrors.FieldError

	email := strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(email) {
		violations = append(violations, apperrors.FieldError{Field: "email", Message: "Valid email is required"})
	}

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) > 100 {
		violations = append(violations, apperrors.FieldError{Field: "name", Message: "Name must be less than 100 characters"})
	}

	if len(violations) > 0 {
		return NewsletterInput{}, violations
	}

	input := NewsletterInput{Email: NormalizeEmail(email)}
	if name != "" {
		input.Name = &name
	}
	return input, nil
}

// ValidateWaitlist checks a raw waitlist join payload. Only presence is
// enforced here; format is left to the store's unique lowercased index.
func ValidateWaitlist(req dto.WaitlistRequest) (WaitlistInput, []apperrors.FieldError) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return WaitlistInput{}, []apperrors.FieldError{{Field: "email", Message: "Email is required"}}
	}
	return WaitlistInput{Email: NormalizeEmail(email)}, nil
}

// NormalizeEmail lowercases an address and folds an internationalized domain
// to its ASCII form for storage. Folding failures keep the lowercased input.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	domain, err := idnaProfile.ToASCII(email[at+1:])
	if err != nil || domain == "" {
		return email
	}
	return email[:at+1] + domain
}

// normalizePhone derives a best-effort E.164 form. It never rejects input:
// numbers that cannot be parsed simply have no normalized form.
func normalizePhone(raw string) *string {
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil
	}
	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted
}
