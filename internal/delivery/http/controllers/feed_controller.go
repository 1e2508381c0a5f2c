package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"eventlistings/internal/delivery/http/helpers"
	"eventlistings/internal/domain"
	"eventlistings/internal/ics"
)

// FeedController serves the listings as iCalendar documents, one feed for the
// whole catalog and one single-event file for "add to calendar" links.
type FeedController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewFeedController(logger *slog.Logger, svc domain.EventService) *FeedController {
	return &FeedController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *FeedController) writeFeedError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrStoreNotInitialized):
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// EventsCalendar godoc
// @Summary Calendar feed of all events
// @Description Returns every event as a VEVENT in one iCalendar document, suitable for calendar client subscriptions. Events whose date never canonicalized are left out of the feed.
// @Tags feeds
// @Produce plain
// @Success 200 {string} string "text/calendar document"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events.ics [get]
func (c *FeedController) EventsCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.writeFeedError(w, r, err)
		return
	}
	cal := ics.BuildCalendar(events)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, _ = w.Write([]byte(cal.Serialize()))
}

// EventCalendar godoc
// @Summary Download one event as an .ics file
// @Description Returns a single-event iCalendar document for the event with the given slug, served as an attachment.
// @Tags feeds
// @Produce plain
// @Param slug path string true "Event slug"
// @Success 200 {string} string "text/calendar document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/calendar.ics [get]
func (c *FeedController) EventCalendar(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		c.writeFeedError(w, r, err)
		return
	}
	cal := ics.BuildEventCalendar(event)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", event.Slug+".ics"))
	_, _ = w.Write([]byte(cal.Serialize()))
}
