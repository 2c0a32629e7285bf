package debugserver

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey avoids collisions with other packages' context keys.
type contextKey string

const requestIDKey contextKey = "request_id"

// requestID tags every request with an ID, echoed on the X-Request-ID
// response header: the client's own X-Request-ID when it sent one,
// otherwise a new UUID. A single Parse call can then be traced across the
// log line it produces and the response the client receives.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFromContext extracts the request ID set by requestID.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// recoverer turns a panicking handler into a 500 response and a logged
// stack trace, instead of taking the whole debug server down.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic handling request",
						zap.Any("recovered", rec),
						zap.String("request_id", requestIDFromContext(r.Context())))
					writeError(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
