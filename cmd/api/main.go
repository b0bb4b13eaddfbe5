package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"meetapp/config"
	_ "meetapp/docs"
	"meetapp/internal/adapters/auth"
	"meetapp/internal/adapters/queue"
	"meetapp/internal/clock"
	deliveryhttp "meetapp/internal/delivery/http"
	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/repository/postgres"
	"meetapp/internal/services"
)

const (
	bcryptCost      = 10
	shutdownTimeout = 10 * time.Second
)

// @title Meetapp API
// @version 1.0
// @description Meetup subscription backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	publisher, err := queue.NewPublisher(queue.PublisherConfig{
		URL:            cfg.NatsURL,
		MaxReconnects:  10,
		ReconnectWait:  2 * time.Second,
		PublishTimeout: cfg.ContextTimeout,
	}, logger)
	if err != nil {
		logger.Error("connect to nats", "err", err)
		os.Exit(1)
	}
	defer publisher.Close()

	userRepo := postgres.NewUserRepository(db)
	meetupRepo := postgres.NewMeetupRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)

	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	clk := clock.NewSystem()
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry, cfg.ContextTimeout)
	meetupService := services.NewMeetupService(meetupRepo, clk, cfg.ContextTimeout)
	subscriptionService := services.NewSubscriptionService(meetupRepo, subscriptionRepo, userRepo, publisher, clk, logger, cfg.ContextTimeout)

	userController := controllers.NewUserController(logger, userService)
	meetupController := controllers.NewMeetupController(logger, meetupService)
	subscriptionController := controllers.NewSubscriptionController(logger, subscriptionService)

	mux := deliveryhttp.NewRouter(userController, meetupController, subscriptionController, tokenVerifier, logger)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(parseCSV(cfg.CORSOrigins), mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
