package domain

import (
	"context"
	"strings"

	"portfolio-contact-backend/pkg/validation"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactResponse is the body returned when a submission was delivered
type ContactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and dispatches a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}

// Field limits, in characters after trimming
const (
	MaxNameLength    = 100
	MaxEmailLength   = 255
	MaxSubjectLength = 200
	MaxMessageLength = 2000
)

// contactRules is shared by the submission client and the endpoint
var contactRules = validation.NewRuleSet(
	validation.Rule{Field: "name", Label: "Name", Tags: "required,max=100"},
	validation.Rule{Field: "email", Label: "Email", Tags: "required,email,max=255"},
	validation.Rule{Field: "subject", Label: "Subject", Tags: "required,max=200"},
	validation.Rule{Field: "message", Label: "Message", Tags: "required,max=2000"},
)

// Normalize returns a copy with surrounding whitespace removed
func (r ContactRequest) Normalize() ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

// Values exposes the fields by wire name
func (r ContactRequest) Values() map[string]string {
	return map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"subject": r.Subject,
		"message": r.Message,
	}
}

// ValidateContact normalizes raw and checks it against the contact rules.
// The error, when non-nil, is a *validation.FieldError for the first
// violated rule in the order name, email, subject, message.
func ValidateContact(raw ContactRequest) (ContactRequest, error) {
	normalized := raw.Normalize()
	if fe := contactRules.Check(normalized.Values()); fe != nil {
		return ContactRequest{}, fe
	}
	return normalized, nil
}

// ContactFields lists the form fields in validation order
func ContactFields() []string {
	rules := contactRules.Rules()
	fields := make([]string, len(rules))
	for i, r := range rules {
		fields[i] = r.Field
	}
	return fields
}
