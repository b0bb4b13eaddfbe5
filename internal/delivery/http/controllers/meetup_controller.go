package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	h "meetapp/internal/delivery/http/helpers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// CreateMeetupRequest is the request body for POST /meetups
type CreateMeetupRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Date        string  `json:"date"` // RFC 3339
	BannerURL   *string `json:"banner_url"`
}

// Validate implements Validator.
func (c CreateMeetupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	} else if _, err := time.Parse(time.RFC3339, c.Date); err != nil {
		errs = append(errs, "date must be RFC 3339")
	}
	return errs
}

// UpdateMeetupRequest is the request body for PUT /meetups/{meetupID}.
// Absent fields are left unchanged.
type UpdateMeetupRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date"` // RFC 3339
	BannerURL   *string `json:"banner_url"`
}

// Validate implements Validator.
func (u UpdateMeetupRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if u.Date != nil {
		if _, err := time.Parse(time.RFC3339, *u.Date); err != nil {
			errs = append(errs, "date must be RFC 3339")
		}
	}
	return errs
}

type MeetupController struct {
	Logger  *slog.Logger
	Service domain.MeetupService
}

func NewMeetupController(logger *slog.Logger, svc domain.MeetupService) *MeetupController {
	return &MeetupController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a meetup
// @Description Create a meetup hosted by the authenticated user. The date must be in the future.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMeetupRequest true "Meetup data"
// @Success 201 {object} helpers.APIResponse "data contains the created meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [post]
func (c *MeetupController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateMeetupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := time.Parse(time.RFC3339, req.Date)

	meetup := &domain.Meetup{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    strings.TrimSpace(req.Location),
		Date:        date,
		HostID:      userID,
		BannerURL:   req.BannerURL,
	}
	if err := c.Service.Create(r.Context(), meetup); err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, meetup)
}

// ListMine godoc
// @Summary List meetups hosted by the authenticated user
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the meetups, ascending by date"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups [get]
func (c *MeetupController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	meetups, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, meetups)
}

// Get godoc
// @Summary Get a meetup by id
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [get]
func (c *MeetupController) Get(w http.ResponseWriter, r *http.Request) {
	meetupID := r.PathValue("meetupID")
	if !uuidRegex.MatchString(meetupID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid meetupID")
		return
	}
	meetup, err := c.Service.GetByID(r.Context(), meetupID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Update godoc
// @Summary Update a meetup
// @Description Update a meetup's fields. Only the host may update; the new date must not be in the past; a meetup already in the past cannot be changed.
// @Tags meetups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Param body body UpdateMeetupRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated meetup"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [put]
func (c *MeetupController) Update(w http.ResponseWriter, r *http.Request) {
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
	var req UpdateMeetupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	upd := domain.MeetupUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
	}
	if req.Date != nil {
		date, _ := time.Parse(time.RFC3339, *req.Date)
		upd.Date = &date
	}

	meetup, err := c.Service.Update(r.Context(), meetupID, userID, upd)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, meetup)
}

// Cancel godoc
// @Summary Cancel a meetup
// @Description Delete a meetup. Only the host may cancel, and only while the meetup is still in the future.
// @Tags meetups
// @Produce json
// @Security BearerAuth
// @Param meetupID path string true "Meetup ID (UUID)"
// @Success 204 "meetup canceled"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /meetups/{meetupID} [delete]
func (c *MeetupController) Cancel(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Cancel(r.Context(), meetupID, userID); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *MeetupController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "meetup not found")
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "not authorized")
	case errors.Is(err, domain.ErrInvalidDate):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, domain.ErrInvalidDate.Error())
	case errors.Is(err, domain.ErrPastMeetup):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "can't change past meetups")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeServiceUnavailable, "temporarily unavailable, retry shortly")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
