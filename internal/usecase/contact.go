package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/pkg/email"
)

// ContactConfig holds the fixed addressing for contact mail
type ContactConfig struct {
	OwnerEmail          string
	OwnerName           string
	FromEmail           string
	FromName            string
	ConfirmationEnabled bool
}

type contactUsecase struct {
	sender email.EmailSender
	cfg    ContactConfig
	log    *slog.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender email.EmailSender, cfg ContactConfig, log *slog.Logger) domain.ContactUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &contactUsecase{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// SendContactMessage re-validates the request and runs the dispatch sequence:
// the owner notification first, then the optional confirmation to the sender.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		req = &domain.ContactRequest{}
	}
	// The endpoint is reachable without the form, so the rules run again here
	submission, err := domain.ValidateContact(*req)
	if err != nil {
		return err
	}

	data := email.ContactEmailData{
		SenderName:          submission.Name,
		SenderEmail:         submission.Email,
		Subject:             submission.Subject,
		Message:             submission.Message,
		OwnerName:           uc.cfg.OwnerName,
		ConfirmationEnabled: uc.cfg.ConfirmationEnabled,
	}

	if err := uc.sendNotification(ctx, data); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	uc.log.InfoContext(ctx, "Contact notification sent", "sender", submission.Email)

	if !uc.cfg.ConfirmationEnabled {
		return nil
	}

	// Best effort: the owner already has the message
	if err := uc.sendConfirmation(ctx, data); err != nil {
		uc.log.WarnContext(ctx, "Confirmation email failed", "sender", submission.Email, "error", err)
		return nil
	}
	uc.log.InfoContext(ctx, "Confirmation email sent", "sender", submission.Email)

	return nil
}

func (uc *contactUsecase) sendNotification(ctx context.Context, data email.ContactEmailData) error {
	html, err := email.RenderNotification(data)
	if err != nil {
		return err
	}
	return uc.sender.Send(ctx, email.Message{
		From:    email.FormatAddress(uc.cfg.FromName, uc.cfg.FromEmail),
		To:      []string{uc.cfg.OwnerEmail},
		Subject: email.NotificationSubject(data.Subject),
		HTML:    html,
		ReplyTo: data.SenderEmail,
	})
}

func (uc *contactUsecase) sendConfirmation(ctx context.Context, data email.ContactEmailData) error {
	html, err := email.RenderConfirmation(data)
	if err != nil {
		return err
	}
	fromName := uc.cfg.OwnerName
	if fromName == "" {
		fromName = uc.cfg.FromName
	}
	return uc.sender.Send(ctx, email.Message{
		From:    email.FormatAddress(fromName, uc.cfg.FromEmail),
		To:      []string{data.SenderEmail},
		Subject: email.ConfirmationSubject,
		HTML:    html,
	})
}
