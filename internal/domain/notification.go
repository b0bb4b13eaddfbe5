package domain

import "context"

// SubscriptionJobKind names the queue topic for subscriber-joined jobs.
const SubscriptionJobKind = "subscription-mail"

// MeetupSnapshot is the meetup state captured into a notification job at
// admission time. The delivery worker renders from the snapshot, not from a
// fresh read, so later edits to the meetup do not change in-flight mail.
type MeetupSnapshot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"` // RFC 3339
	Location string `json:"location"`
	HostName string `json:"host_name"`
	HostMail string `json:"host_email"`
}

// SubscriptionJob is the durable payload published after a successful
// admission. SubscriberCount reflects the just-created subscription.
type SubscriptionJob struct {
	Meetup          MeetupSnapshot `json:"meetup"`
	SubscriberID    string         `json:"subscriber_id"`
	SubscriberName  string         `json:"subscriber_name"`
	SubscriberCount int            `json:"subscriber_count"`
}

// JobPublisher publishes durable notification jobs for out-of-process
// delivery. Publish failures never undo the admission that triggered them.
type JobPublisher interface {
	Publish(ctx context.Context, kind string, job *SubscriptionJob) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SubscriptionEmailData holds data for the subscriber-joined email sent to the host.
type SubscriptionEmailData struct {
	HostName        string
	MeetupTitle     string
	MeetupDate      string
	MeetupLocation  string
	SubscriberName  string
	SubscriberCount int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSubscriptionNotice(ctx context.Context, to string, data *SubscriptionEmailData) error
}
