package services

import (
	"context"
	"fmt"
	"log"

	"meetapp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendSubscriptionNotice emails a meetup host that someone subscribed, using
// the "subscription" template and the given data.
func (s *emailService) SendSubscriptionNotice(ctx context.Context, to string, data *domain.SubscriptionEmailData) error {
	if data == nil {
		return fmt.Errorf("subscription notice data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("subscription", data)
	if err != nil {
		return fmt.Errorf("failed to render subscription template: %w", err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send subscription email: %w", err)
	}
	log.Printf("[EMAIL] Subscription notice sent to %s", to)
	return nil
}
