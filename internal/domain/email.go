package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// StatusChangeEmailData holds data for the event confirmed and event cancelled emails.
type StatusChangeEmailData struct {
	Email       string
	FirstName   string
	EventName   string
	Description string
	StartDate   string
	EndDate     string
	Role        Role
	Status      EventStatus
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendStatusChange(ctx context.Context, data *StatusChangeEmailData) error
}
