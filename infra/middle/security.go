package middle

import (
	"mime"
	"net"
	"net/http"
	"strings"

	"github.com/mstgnz/goepay/infra/logger"
	"github.com/mstgnz/goepay/infra/response"
)

// DefaultMaxFormBytes bounds a notification request body.
const DefaultMaxFormBytes int64 = 64 << 10

// SecurityHeaders adds security headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Referrer-Policy", "no-referrer")

			next.ServeHTTP(w, r)
		})
	}
}

// IPAllowlist restricts access to the listed client addresses. An empty
// list allows every address.
func IPAllowlist(allowed []string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, ip := range allowed {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(set) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := ClientIP(r)
			if _, ok := set[clientIP]; !ok {
				logger.Warn("Request from address not in allowlist", logger.LogContext{
					Fields: map[string]any{"client_ip": clientIP, "path": r.URL.Path},
				})
				response.Error(w, http.StatusForbidden, "IP not whitelisted", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FormRequest accepts POST bodies only as application/x-www-form-urlencoded
// and caps their size at maxBytes (DefaultMaxFormBytes when not positive).
func FormRequest(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFormBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if err != nil || mediaType != "application/x-www-form-urlencoded" {
					response.Error(w, http.StatusUnsupportedMediaType, "Content-Type must be application/x-www-form-urlencoded", nil)
					return
				}
				if r.ContentLength > maxBytes {
					response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the real client IP
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// first hop is the original client
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
