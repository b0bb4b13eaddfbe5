package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "meetapp/internal/delivery/http/helpers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

type SubscriptionController struct {
	Logger  *slog.Logger
	Service domain.SubscriptionService
}

func NewSubscriptionController(logger *slog.Logger, svc domain.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		Logger:  logger,
		Service: svc,
	}
}

// Subscribe godoc
// @Summary Subscribe to a meetup
// @Description Subscribe the authenticated user to a meetup. Rejected when the user hosts the meetup, the meetup is in the past, or the user already holds a subscription at the same instant.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the created subscription"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [post]
func (c *SubscriptionController) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	meetupID := r.PathValue("meetupID")
	if !uuidRegex.MatchString(meetupID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid meetupID")
		return
	}

	sub, err := c.Service.Subscribe(r.Context(), userID, meetupID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// Unsubscribe godoc
// @Summary Unsubscribe from a meetup
// @Description Remove the authenticated user's subscription to a future meetup.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 204 "subscription removed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID}/subscriptions [delete]
func (c *SubscriptionController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	meetupID := r.PathValue("meetupID")
	if !uuidRegex.MatchString(meetupID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid meetupID")
		return
	}

	if err := c.Service.Unsubscribe(r.Context(), userID, meetupID); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUpcoming godoc
// @Summary List the user's upcoming subscribed meetups
// @Description Returns (title, date) pairs for future meetups the authenticated user subscribed to, ascending by date. Page size is fixed at 10.
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number (default 1)"
// @Success 200 {object} helpers.APIResponse "data contains the upcoming meetups"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /subscriptions [get]
func (c *SubscriptionController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	page := h.ParsePage(r)

	list, err := c.Service.ListUpcoming(r.Context(), userID, page)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

func (c *SubscriptionController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrSelfHostSubscription):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "can't subscribe to the meetup you host")
	case errors.Is(err, domain.ErrPastMeetup):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "can't subscribe to past meetups")
	case errors.Is(err, domain.ErrTimeSlotConflict):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "can't subscribe to two meetups at the same time")
	case errors.Is(err, domain.ErrStorageUnavailable):
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeServiceUnavailable, "temporarily unavailable, retry shortly")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
