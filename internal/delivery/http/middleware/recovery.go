package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"eventlistings/internal/delivery/http/helpers"
)

// Recovery turns handler panics into 500 responses. The panic value and stack
// are logged; the client only sees the generic envelope.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered",
					"error", rec,
					"path", r.URL.Path,
					"method", r.Method,
					"stack", string(debug.Stack()),
				)
				helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
