package queue

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
	gobreaker "github.com/sony/gobreaker/v2"

	"meetapp/internal/domain"
)

// PublisherConfig holds settings for the NATS JetStream job publisher.
type PublisherConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	PublishTimeout time.Duration
}

// Publisher publishes notification jobs to NATS JetStream. A circuit breaker
// keeps a dead broker from stalling admission requests: once it opens,
// publishes fail fast until the broker recovers.
type Publisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker[any]
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPublisher connects to NATS and returns a JetStream-backed JobPublisher.
// Message UUIDs double as Nats-Msg-Id so JetStream can deduplicate redelivered
// publishes.
func NewPublisher(cfg PublisherConfig, logger *slog.Logger) (*Publisher, error) {
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

	wmConfig := wmnats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmnats.NATSMarshaler{},
		JetStream: wmnats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmnats.NewPublisher(wmConfig, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "job-publisher",
		Timeout: 30 * time.Second,
	})

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Publisher{
		publisher: pub,
		breaker:   breaker,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Publish serializes the job and publishes it on the topic named by kind.
func (p *Publisher) Publish(ctx context.Context, kind string, job *domain.SubscriptionJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	msg.SetContext(ctx)

	if _, err := p.breaker.Execute(func() (any, error) {
		return nil, p.publisher.Publish(kind, msg)
	}); err != nil {
		return fmt.Errorf("publish %s job: %w", kind, err)
	}
	return nil
}

// Close shuts down the underlying NATS connection.
func (p *Publisher) Close() error {
	return p.publisher.Close()
}
