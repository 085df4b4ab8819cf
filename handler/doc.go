// Package handler provides the HTTP handler for ePay.bg payment notifications.
//
// The gateway calls the merchant back server-to-server with two form values,
// encoded and checksum. NotifyHandler verifies them, passes each invoice
// notification to an application hook and writes the plain-text
// acknowledgement the gateway expects:
//
//	notify := handler.NewNotifyHandler(secret, func(ctx context.Context, n epay.Notification) error {
//	    return orders.MarkPaid(ctx, n.Invoice, n.Status)
//	})
//
//	r := chi.NewRouter()
//	router.Routes(r, notify, config.NotifyAllowedIPs())
//
// A failing hook answers with HTTP 500 and no acknowledgement, so the gateway
// retries the notification later. A checksum mismatch answers with
// "ERR=Not valid CHECKSUM".
package handler
