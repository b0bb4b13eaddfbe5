package services

import (
	"context"
	"errors"
	"testing"

	"meetapp/internal/domain"
)

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject:" + templateName, "<p>html</p>", "text", nil
}

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

func TestEmailService_SendSubscriptionNotice(t *testing.T) {
	data := &domain.SubscriptionEmailData{
		HostName:        "Helen Host",
		MeetupTitle:     "Go Meetup",
		SubscriberName:  "Sam",
		SubscriberCount: 2,
	}

	t.Run("renders the subscription template and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{})

		if err := svc.SendSubscriptionNotice(context.Background(), "helen@example.com", data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mailer.to != "helen@example.com" {
			t.Errorf("to = %q", mailer.to)
		}
		if mailer.subject != "subject:subscription" {
			t.Errorf("subject = %q", mailer.subject)
		}
	})

	t.Run("nil data rejected", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		if err := svc.SendSubscriptionNotice(context.Background(), "helen@example.com", nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("render failure propagates", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{err: errors.New("missing template")})
		if err := svc.SendSubscriptionNotice(context.Background(), "helen@example.com", data); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("send failure propagates", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("smtp down")}, &fakeRenderer{})
		if err := svc.SendSubscriptionNotice(context.Background(), "helen@example.com", data); err == nil {
			t.Fatal("expected error")
		}
	})
}
