package middle

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mstgnz/goepay/infra/logger"
	"github.com/mstgnz/goepay/infra/response"
)

// PanicRecovery converts a panic into a 500 JSON envelope and an error log
// entry. No acknowledgement is written, so the gateway retries the callback.
// http.ErrAbortHandler is re-raised for net/http to handle.
func PanicRecovery() func(http.Handler) http.Handler {
	return PanicRecoveryWithHandler(func(w http.ResponseWriter, r *http.Request, rec any) {
		logger.Error("Panic recovered", fmt.Errorf("%v", rec), logger.LogContext{
			RequestID: middleware.GetReqID(r.Context()),
			Fields: map[string]any{
				"method":    r.Method,
				"url":       r.URL.String(),
				"client_ip": ClientIP(r),
				"stack":     string(debug.Stack()),
			},
		})

		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		response.Error(w, http.StatusInternalServerError, "Internal server error", fmt.Errorf("an unexpected error occurred"))
	})
}

// PanicRecoveryWithHandler allows custom panic handling
func PanicRecoveryWithHandler(handler func(http.ResponseWriter, *http.Request, any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					handler(w, r, rec)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
