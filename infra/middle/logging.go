package middle

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mstgnz/goepay/infra/logger"
)

// responseWriter wraps http.ResponseWriter to capture the status and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// RequestLogging logs every request with its status and duration. Server
// errors are logged at error level, client errors at warn level.
func RequestLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			log := logger.WithRequest(middleware.GetReqID(r.Context())).
				AddField("method", r.Method).
				AddField("path", r.URL.Path).
				AddField("status", rw.statusCode).
				AddField("bytes", rw.bytes).
				AddField("client_ip", ClientIP(r)).
				AddField("duration_ms", time.Since(start).Milliseconds())

			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				log.Error("Request failed", nil)
			case rw.statusCode >= http.StatusBadRequest:
				log.Warn("Request rejected")
			default:
				log.Info("Request handled")
			}
		})
	}
}
