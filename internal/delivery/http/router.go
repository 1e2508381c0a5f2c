package http

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventlistings/internal/delivery/http/controllers"
	"eventlistings/internal/delivery/http/middleware"
)

// register mounts handler on mux under pattern, wrapped in the per-route
// metrics middleware. The path part of the pattern becomes the metrics label,
// so raw request paths never reach the label set.
func register(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	path := pattern
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		path = pattern[i+1:]
	}
	mux.Handle(pattern, middleware.Metrics(path, handler))
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, bookingController *controllers.BookingController, feedController *controllers.FeedController) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	register(mux, "POST /events", eventController.CreateEvent)
	register(mux, "GET /events", eventController.ListEvents)
	register(mux, "GET /events/{slug}", eventController.GetEventBySlug)
	register(mux, "PATCH /events/{eventID}", eventController.UpdateEvent)
	register(mux, "DELETE /events/{eventID}", eventController.DeleteEvent)
	register(mux, "POST /events/import", eventController.ImportEvents)

	// Bookings
	register(mux, "POST /bookings", bookingController.CreateBooking)
	register(mux, "GET /events/{eventID}/bookings", bookingController.ListEventBookings)

	// Calendar feeds
	register(mux, "GET /events.ics", feedController.EventsCalendar)
	register(mux, "GET /events/{slug}/calendar.ics", feedController.EventCalendar)

	// Operational endpoints, deliberately outside the metrics wrapper.
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
