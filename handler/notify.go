package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/mstgnz/goepay/infra/logger"
	"github.com/mstgnz/goepay/infra/middle"
	"github.com/mstgnz/goepay/infra/opensearch"
	"github.com/mstgnz/goepay/infra/response"
	"github.com/mstgnz/goepay/provider/epay"
)

// Body sent back when the callback checksum does not verify.
const invalidChecksumBody = "ERR=Not valid CHECKSUM\n"

// NotificationHook receives every verified notification before it is
// acknowledged. Returning an error withholds the acknowledgement so the
// gateway sends the callback again.
type NotificationHook func(ctx context.Context, n epay.Notification) error

// NotificationRecorder stores processed notifications, e.g. *opensearch.Logger.
type NotificationRecorder interface {
	LogNotification(ctx context.Context, entry opensearch.NotificationLog) error
}

// NotifyHandler serves the gateway's server-to-server payment callback.
type NotifyHandler struct {
	secret   string
	hook     NotificationHook
	recorder NotificationRecorder
	timeout  time.Duration
}

// NewNotifyHandler creates a handler verifying callbacks with secret. hook may be nil.
func NewNotifyHandler(secret string, hook NotificationHook) *NotifyHandler {
	return &NotifyHandler{
		secret:  secret,
		hook:    hook,
		timeout: 30 * time.Second,
	}
}

// WithRecorder stores every acknowledged notification in recorder.
func (h *NotifyHandler) WithRecorder(recorder NotificationRecorder) *NotifyHandler {
	h.recorder = recorder
	return h
}

// ServeHTTP verifies the encoded/checksum form values, hands each
// notification to the hook and answers with one acknowledgement line per
// invoice.
func (h *NotifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}
	clientIP := middle.ClientIP(r)
	log := logger.WithRequest(requestID)

	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	encoded := r.Form.Get("encoded")
	checksum := r.Form.Get("checksum")
	if encoded == "" || checksum == "" {
		log.Warn("Notification without encoded or checksum")
		response.Error(w, http.StatusBadRequest, "encoded and checksum are required", nil)
		return
	}

	notifications, err := epay.ParseNotifications(h.secret, encoded, checksum)
	if err != nil {
		if errors.Is(err, epay.ErrInvalidChecksum) {
			log.AddField("client_ip", clientIP).Warn("Notification checksum mismatch")
			response.WriteText(w, http.StatusBadRequest, invalidChecksumBody)
			return
		}
		log.Error("Notification payload rejected", err)
		response.Error(w, http.StatusBadRequest, "Invalid notification payload", err)
		return
	}

	for _, n := range notifications {
		if h.hook != nil {
			if err := h.hook(ctx, n); err != nil {
				log.SetInvoice(n.Invoice).Error("Notification hook failed", err)
				h.record(ctx, requestID, clientIP, n, err)
				response.Error(w, http.StatusInternalServerError, "Notification processing failed", err)
				return
			}
		}
		h.record(ctx, requestID, clientIP, n, nil)

		logger.Info("Notification acknowledged", logger.LogContext{
			RequestID: requestID,
			Invoice:   n.Invoice,
			Fields: map[string]any{
				"status": string(n.Status),
				"ack":    n.Acknowledgement(),
			},
		})
	}

	response.WriteText(w, http.StatusOK, epay.Acknowledge(notifications))
}

func (h *NotifyHandler) record(ctx context.Context, requestID, clientIP string, n epay.Notification, hookErr error) {
	if h.recorder == nil {
		return
	}

	entry := opensearch.NotificationLog{
		Timestamp:       time.Now().UTC(),
		RequestID:       requestID,
		Invoice:         n.Invoice,
		Status:          string(n.Status),
		PayTime:         n.PayDate,
		STAN:            n.STAN,
		BCode:           n.BCode,
		Acknowledgement: n.Acknowledgement(),
		RemoteAddr:      clientIP,
	}
	if hookErr != nil {
		entry.Acknowledgement = ""
		entry.Error = hookErr.Error()
	}

	if err := h.recorder.LogNotification(ctx, entry); err != nil {
		logger.Error("Failed to record notification", err, logger.LogContext{RequestID: requestID, Invoice: n.Invoice})
	}
}
