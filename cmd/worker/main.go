package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetapp/config"
	"meetapp/internal/adapters/email"
	"meetapp/internal/services"
	"meetapp/internal/worker"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	subscriber, err := worker.NewSubscriber(worker.SubscriberConfig{
		URL:            cfg.NatsURL,
		QueueGroup:     cfg.QueueGroup,
		DurableName:    cfg.DurableName,
		MaxReconnects:  10,
		ReconnectWait:  2 * time.Second,
		AckWaitTimeout: 30 * time.Second,
	}, logger)
	if err != nil {
		logger.Error("connect to nats", "err", err)
		os.Exit(1)
	}
	defer subscriber.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started", "env", cfg.Environment, "queue_group", cfg.QueueGroup)

	w := worker.New(subscriber, emailService, logger)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", "err", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
