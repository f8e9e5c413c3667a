package services

import (
	"context"
	"fmt"
	"log"

	"undangan/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcome sends the registration welcome email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

// SendAccountVerified notifies a user that an admin verified their account,
// using the "account_verified" template.
func (s *emailService) SendAccountVerified(ctx context.Context, data *domain.AccountVerifiedEmailData) error {
	if data == nil {
		return fmt.Errorf("account verified email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("account_verified", data)
	if err != nil {
		return fmt.Errorf("failed to render account_verified template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send account verified email: %w", err)
	}
	log.Printf("[EMAIL] Account verified email sent to %s", data.Email)
	return nil
}
