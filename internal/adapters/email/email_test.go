package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturalevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	data := &domain.StatusChangeEmailData{
		Email:       "ana@mail.com",
		FirstName:   "Ana",
		EventName:   "Colors & Shapes",
		Description: "Exhibition of painting: Colors & Shapes",
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-16",
		Role:        domain.RoleCurator,
		Status:      domain.StatusConfirmed,
	}

	subject, html, text, err := r.Render("event_confirmed", data)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed: Colors & Shapes starts 2025-03-10", subject)
	assert.Contains(t, html, "Colors &amp; Shapes")
	assert.Contains(t, text, "Your role: CURATOR")

	subject, _, text, err = r.Render("event_cancelled", data)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled: Colors & Shapes", subject)
	assert.Contains(t, text, "2025-03-10 to 2025-03-16")

	_, _, _, err = r.Render("welcome", data)
	require.Error(t, err)
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "events@city.org", FromName: "City Events"}, testLogger)

	require.NoError(t, m.Send(context.Background(), "ana@mail.com", "Hello", "<p>hi</p>", ""))
	require.NotNil(t, client.input)
	assert.Equal(t, "City Events <events@city.org>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ana@mail.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(client.input.Message.Subject.Data))
	require.NotNil(t, client.input.Message.Body.Html)
	assert.Nil(t, client.input.Message.Body.Text)

	client.err = errors.New("throttled")
	require.ErrorContains(t, m.Send(context.Background(), "ana@mail.com", "Hello", "", "hi"), "throttled")
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, testLogger)
	require.NoError(t, err)
	require.NoError(t, m.Send(context.Background(), "a@b.co", "s", "", "t"))

	m, err = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)

	_, err = NewMailer(MailerConfig{Provider: "ses"}, testLogger)
	require.Error(t, err)

	m, err = NewMailer(MailerConfig{Provider: "ses", FromAddress: "events@city.org", SES: SESConfig{Region: "us-east-1"}}, testLogger)
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)
}
