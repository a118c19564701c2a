package services

import (
	"context"
	"fmt"
	"log/slog"

	"culturalevents/internal/domain"
)

var statusTemplates = map[domain.EventStatus]string{
	domain.StatusConfirmed: "event_confirmed",
	domain.StatusCancelled: "event_cancelled",
}

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendStatusChange sends the confirmed or cancelled notice for data.Status.
func (s *emailService) SendStatusChange(ctx context.Context, data *domain.StatusChangeEmailData) error {
	if data == nil {
		return fmt.Errorf("status change email data is nil")
	}
	name, ok := statusTemplates[data.Status]
	if !ok {
		return fmt.Errorf("no email template for status %s", data.Status)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(name, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", name, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send %s email: %w", name, err)
	}
	s.logger.InfoContext(ctx, "status change email sent",
		slog.String("to", data.Email),
		slog.String("status", string(data.Status)),
	)
	return nil
}
