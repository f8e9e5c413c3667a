package services

import (
	"context"
	"errors"
	"testing"

	"undangan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to      string
	subject string
	err     error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.subject = subject
	return nil
}

type fakeTemplateRenderer struct {
	err error
}

func (f *fakeTemplateRenderer) Render(name string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject: " + name, "<p>" + name + "</p>", name, nil
}

func TestEmailService_SendWelcome(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeTemplateRenderer{})

		err := svc.SendWelcome(ctx, &domain.WelcomeEmailData{Email: "alice@example.com", Name: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", mailer.to)
		assert.Equal(t, "subject: welcome", mailer.subject)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeTemplateRenderer{})
		require.Error(t, svc.SendWelcome(ctx, nil))
	})

	t.Run("render failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeTemplateRenderer{err: errors.New("missing template")})
		require.Error(t, svc.SendWelcome(ctx, &domain.WelcomeEmailData{Email: "a@b.com"}))
	})
}

func TestEmailService_SendAccountVerified(t *testing.T) {
	ctx := context.Background()

	mailer := &fakeMailer{}
	svc := NewEmailService(mailer, &fakeTemplateRenderer{})

	err := svc.SendAccountVerified(ctx, &domain.AccountVerifiedEmailData{Email: "bob@example.com", Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", mailer.to)
	assert.Equal(t, "subject: account_verified", mailer.subject)
}
