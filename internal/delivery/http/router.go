package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	userController *controllers.UserController,
	meetupController *controllers.MeetupController,
	subscriptionController *controllers.SubscriptionController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Public
	mux.HandleFunc("POST /users", userController.SignUp)
	mux.HandleFunc("POST /sessions", userController.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.Me))

	// Meetups (host-facing)
	mux.HandleFunc("POST /meetups", auth(meetupController.Create))
	mux.HandleFunc("GET /meetups", auth(meetupController.ListMine))
	mux.HandleFunc("GET /meetups/{meetupID}", auth(meetupController.Get))
	mux.HandleFunc("PUT /meetups/{meetupID}", auth(meetupController.Update))
	mux.HandleFunc("DELETE /meetups/{meetupID}", auth(meetupController.Cancel))

	// Subscriptions
	mux.HandleFunc("POST /meetups/{meetupID}/subscriptions", auth(subscriptionController.Subscribe))
	mux.HandleFunc("DELETE /meetups/{meetupID}/subscriptions", auth(subscriptionController.Unsubscribe))
	mux.HandleFunc("GET /subscriptions", auth(subscriptionController.ListUpcoming))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
