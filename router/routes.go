package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mstgnz/goepay/handler"
	"github.com/mstgnz/goepay/infra/middle"
)

// NotifyPath is where the gateway posts payment notifications, relative to
// the router Routes is given.
const NotifyPath = "/epay/notify"

// Routes mounts the notification endpoint on a caller-owned router. Only
// the addresses in allowedIPs may post to it; an empty list allows all.
func Routes(r chi.Router, notify *handler.NotifyHandler, allowedIPs []string) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestID)
		r.Use(middle.RequestLogging())
		r.Use(middle.PanicRecovery())
		r.Use(middle.SecurityHeaders())
		r.Use(middle.IPAllowlist(allowedIPs))
		r.Use(middle.FormRequest(middle.DefaultMaxFormBytes))

		r.Method(http.MethodPost, NotifyPath, notify)
	})
}
