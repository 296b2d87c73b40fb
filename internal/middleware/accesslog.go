// Package middleware holds the HTTP middlewares used by the router
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"otoran/internal/logger"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

// captureWriter records the status and bytes written
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// AccessLog tags each request with an id, stores a request scoped logger in
// the context and logs the request once it is done. Requests slower than slow
// are logged at warn level; zero disables that.
func AccessLog(log *logger.Logger, slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLog := log.With("request_id", requestID)
			r = r.WithContext(logger.IntoContext(r.Context(), reqLog))

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			if slow > 0 && elapsed >= slow {
				reqLog.Warn("%s %s %d %dB (%v, slow)", r.Method, r.URL.Path, cw.status, cw.bytes, elapsed)
				return
			}
			reqLog.Info("%s %s %d %dB (%v)", r.Method, r.URL.Path, cw.status, cw.bytes, elapsed)
		})
	}
}
