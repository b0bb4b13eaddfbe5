package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"meetapp/internal/domain"
)

type fakeEmailService struct {
	sent    []string
	lastTo  string
	last    *domain.SubscriptionEmailData
	sendErr error
}

func (f *fakeEmailService) SendSubscriptionNotice(ctx context.Context, to string, data *domain.SubscriptionEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	f.lastTo = to
	f.last = data
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func jobMessage(t *testing.T, job *domain.SubscriptionJob) *message.Message {
	t.Helper()
	payload, err := json.Marshal(job)
	if err != nil {
		t.Fatal(err)
	}
	return message.NewMessage(watermill.NewUUID(), payload)
}

func TestWorkerHandle(t *testing.T) {
	validJob := &domain.SubscriptionJob{
		Meetup: domain.MeetupSnapshot{
			ID:       "meetup-1",
			Title:    "Go Meetup",
			Date:     "2026-09-15T19:00:00Z",
			Location: "Community Hall",
			HostName: "Helen Host",
			HostMail: "helen@example.com",
		},
		SubscriberID:    "user-1",
		SubscriberName:  "Sam Subscriber",
		SubscriberCount: 3,
	}

	tests := []struct {
		name     string
		msg      func(t *testing.T) *message.Message
		sendErr  error
		wantSent int
		wantAck  bool
	}{
		{
			name:     "valid job emails the host and acks",
			msg:      func(t *testing.T) *message.Message { return jobMessage(t, validJob) },
			wantSent: 1,
			wantAck:  true,
		},
		{
			name: "malformed payload dropped with ack",
			msg: func(t *testing.T) *message.Message {
				return message.NewMessage(watermill.NewUUID(), []byte("not json"))
			},
			wantAck: true,
		},
		{
			name: "missing host email dropped with ack",
			msg: func(t *testing.T) *message.Message {
				job := *validJob
				job.Meetup.HostMail = ""
				return jobMessage(t, &job)
			},
			wantAck: true,
		},
		{
			name:    "send failure nacks for redelivery",
			msg:     func(t *testing.T) *message.Message { return jobMessage(t, validJob) },
			sendErr: errors.New("ses throttled"),
			wantAck: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := &fakeEmailService{sendErr: tt.sendErr}
			w := New(nil, emails, testLogger())
			msg := tt.msg(t)

			w.handle(context.Background(), msg)

			if len(emails.sent) != tt.wantSent {
				t.Fatalf("sent %d emails, want %d", len(emails.sent), tt.wantSent)
			}
			select {
			case <-msg.Acked():
				if !tt.wantAck {
					t.Fatal("message acked, want nack")
				}
			case <-msg.Nacked():
				if tt.wantAck {
					t.Fatal("message nacked, want ack")
				}
			default:
				t.Fatal("message neither acked nor nacked")
			}
		})
	}
}

func TestWorkerHandleEmailData(t *testing.T) {
	job := &domain.SubscriptionJob{
		Meetup: domain.MeetupSnapshot{
			ID:       "meetup-1",
			Title:    "Go Meetup",
			Date:     "2026-09-15T19:00:00Z",
			Location: "Community Hall",
			HostName: "Helen Host",
			HostMail: "helen@example.com",
		},
		SubscriberID:    "user-1",
		SubscriberName:  "Sam Subscriber",
		SubscriberCount: 7,
	}

	emails := &fakeEmailService{}
	w := New(nil, emails, testLogger())
	w.handle(context.Background(), jobMessage(t, job))

	if emails.lastTo != "helen@example.com" {
		t.Errorf("to = %q", emails.lastTo)
	}
	data := emails.last
	if data == nil {
		t.Fatal("no email data captured")
	}
	if data.HostName != "Helen Host" || data.SubscriberName != "Sam Subscriber" {
		t.Errorf("names = %q / %q", data.HostName, data.SubscriberName)
	}
	if data.SubscriberCount != 7 {
		t.Errorf("subscriber count = %d, want 7", data.SubscriberCount)
	}
	if data.MeetupDate != "2026-09-15T19:00:00Z" {
		t.Errorf("date = %q", data.MeetupDate)
	}
}
