package httpx

import (
	"log/slog"
	"net/http"
)

// HandlerFunc is an endpoint that reports unexpected failures by returning
// them. Not-found and invalid-input results are written by the endpoint
// itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle wraps fn in the fault barrier: any returned error is logged and
// answered with the SystemError envelope and HTTP 500.
func Handle(logger *slog.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r),
		)

		if rw, ok := w.(*responseWriter); ok && rw.wroteHeader() {
			return
		}
		JSON(w, http.StatusInternalServerError, SystemError())
	}
}
