package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"meetapp/internal/domain"
)

// SubscriberConfig holds settings for the NATS JetStream job consumer.
type SubscriberConfig struct {
	URL            string
	QueueGroup     string
	DurableName    string
	MaxReconnects  int
	ReconnectWait  time.Duration
	AckWaitTimeout time.Duration
}

// NewSubscriber creates a durable JetStream subscriber. Durable consumers in
// a queue group let multiple worker instances share the job stream with
// at-least-once delivery.
func NewSubscriber(cfg SubscriberConfig, logger *slog.Logger) (message.Subscriber, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("nats disconnected", "err", err)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	wmConfig := wmnats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmnats.NATSMarshaler{},
		JetStream: wmnats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			AckAsync:      false,
			DurablePrefix: cfg.DurableName,
		},
	}

	sub, err := wmnats.NewSubscriber(wmConfig, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}

// Worker consumes subscription jobs and emails the meetup host.
type Worker struct {
	subscriber   message.Subscriber
	emailService domain.EmailService
	logger       *slog.Logger
}

func New(subscriber message.Subscriber, emailService domain.EmailService, logger *slog.Logger) *Worker {
	return &Worker{
		subscriber:   subscriber,
		emailService: emailService,
		logger:       logger,
	}
}

// Run consumes jobs until ctx is canceled. Jobs that fail to send are nacked
// for redelivery; malformed payloads are acked and dropped, since redelivery
// cannot fix them.
func (w *Worker) Run(ctx context.Context) error {
	messages, err := w.subscriber.Subscribe(ctx, domain.SubscriptionJobKind)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", domain.SubscriptionJobKind, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg *message.Message) {
	var job domain.SubscriptionJob
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		w.logger.Error("drop malformed subscription job", "msg_uuid", msg.UUID, "err", err)
		msg.Ack()
		return
	}
	if job.Meetup.HostMail == "" {
		w.logger.Error("drop subscription job without host email", "msg_uuid", msg.UUID, "meetup_id", job.Meetup.ID)
		msg.Ack()
		return
	}

	data := &domain.SubscriptionEmailData{
		HostName:        job.Meetup.HostName,
		MeetupTitle:     job.Meetup.Title,
		MeetupDate:      job.Meetup.Date,
		MeetupLocation:  job.Meetup.Location,
		SubscriberName:  job.SubscriberName,
		SubscriberCount: job.SubscriberCount,
	}
	if err := w.emailService.SendSubscriptionNotice(ctx, job.Meetup.HostMail, data); err != nil {
		w.logger.Error("send subscription notice", "msg_uuid", msg.UUID, "meetup_id", job.Meetup.ID, "err", err)
		msg.Nack()
		return
	}

	w.logger.Info("subscription notice delivered",
		"meetup_id", job.Meetup.ID,
		"subscriber_id", job.SubscriberID,
		"subscriber_count", job.SubscriberCount,
	)
	msg.Ack()
}
