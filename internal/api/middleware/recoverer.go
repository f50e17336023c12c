package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dkovacs/tasknest/internal/api/shared"
)

// Recoverer converts handler panics into JSON 500 responses so clients never
// see a bare connection reset or an HTML error page.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC: net/http uses this sentinel to abort the handler
					panic(rec)
				}

				slog.Error("panic recovered in HTTP handler",
					slog.Any("panic", rec),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("trace_id", shared.GetTraceID(r.Context())),
					slog.String("stack", string(debug.Stack())))

				shared.RespondWithError(w, r, http.StatusInternalServerError,
					"Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
