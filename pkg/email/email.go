package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"portfolio-contact-backend/config"
)

var (
	// ErrProviderRejected means the provider answered but refused the send
	ErrProviderRejected = errors.New("email: provider rejected the message")
	// ErrTransport means the provider could not be reached or timed out
	ErrTransport = errors.New("email: transport failure")
	// ErrInvalidMessage means the message failed local checks before sending
	ErrInvalidMessage = errors.New("email: invalid message")
)

var addressRegex = regexp.MustCompile(`^[^\s@<>]+@[^\s@<>]+\.[^\s@<>]+$`)

// EmailSender delivers one message through a transactional email provider
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is the provider-neutral email payload
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Validate checks the fields every provider requires
func (m Message) Validate() error {
	if strings.TrimSpace(m.From) == "" {
		return fmt.Errorf("%w: from is required", ErrInvalidMessage)
	}
	if len(m.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	for _, to := range m.To {
		if !addressRegex.MatchString(strings.TrimSpace(to)) {
			return fmt.Errorf("%w: invalid recipient %q", ErrInvalidMessage, to)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("%w: html body is required", ErrInvalidMessage)
	}
	return nil
}

// FormatAddress renders "Name <addr>" or just addr when name is empty
func FormatAddress(name, addr string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

// NewSender picks the sender configured by EMAIL_PROVIDER
func NewSender(cfg *config.Config) (EmailSender, error) {
	switch cfg.EmailProvider {
	case "", "resend":
		return NewResendSender(cfg.ResendAPIURL, cfg.ResendAPIKey, cfg.ProviderTimeout), nil
	case "postmark":
		return NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.ProviderTimeout), nil
	case "file":
		return NewFileSender(cfg.EmailOutboxDir), nil
	default:
		return nil, fmt.Errorf("email: unknown provider %q", cfg.EmailProvider)
	}
}
