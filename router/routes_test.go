package router

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mstgnz/goepay/handler"
	"github.com/mstgnz/goepay/provider/epay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	require.NotNil(t, r)

	assert.NotPanics(t, func() {
		Routes(r, handler.NewNotifyHandler(testSecret, nil), nil)
	})
}

func TestRoutes_Notify(t *testing.T) {
	var requestID string
	notify := handler.NewNotifyHandler(testSecret, func(ctx context.Context, n epay.Notification) error {
		requestID = middleware.GetReqID(ctx)
		return nil
	})

	r := chi.NewRouter()
	Routes(r, notify, nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("INVOICE=42:STATUS=PAID"))
	form := url.Values{"encoded": {encoded}, "checksum": {epay.Sign(testSecret, encoded)}}

	req := httptest.NewRequest(http.MethodPost, NotifyPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INVOICE=42:STATUS=OK\n", w.Body.String())
	assert.NotEmpty(t, requestID, "request id middleware should run before the handler")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRoutes_Allowlist(t *testing.T) {
	hookCalls := 0
	notify := handler.NewNotifyHandler(testSecret, func(ctx context.Context, n epay.Notification) error {
		hookCalls++
		return nil
	})

	r := chi.NewRouter()
	Routes(r, notify, []string{"203.0.113.10"})

	encoded := base64.StdEncoding.EncodeToString([]byte("INVOICE=42:STATUS=PAID"))
	form := url.Values{"encoded": {encoded}, "checksum": {epay.Sign(testSecret, encoded)}}

	tests := []struct {
		name       string
		remoteAddr string
		wantStatus int
	}{
		{"gateway address", "203.0.113.10:40000", http.StatusOK},
		{"other address", "192.0.2.55:40000", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, NotifyPath, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.RemoteAddr = tt.remoteAddr

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	assert.Equal(t, 1, hookCalls)
}

func TestRoutes_RejectsNonFormBody(t *testing.T) {
	r := chi.NewRouter()
	Routes(r, handler.NewNotifyHandler(testSecret, nil), nil)

	req := httptest.NewRequest(http.MethodPost, NotifyPath, strings.NewReader(`{"encoded":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRoutes_HookPanic(t *testing.T) {
	notify := handler.NewNotifyHandler(testSecret, func(ctx context.Context, n epay.Notification) error {
		panic("order store unavailable")
	})

	r := chi.NewRouter()
	Routes(r, notify, nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("INVOICE=42:STATUS=PAID"))
	form := url.Values{"encoded": {encoded}, "checksum": {epay.Sign(testSecret, encoded)}}

	req := httptest.NewRequest(http.MethodPost, NotifyPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	require.NotPanics(t, func() { r.ServeHTTP(w, req) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "STATUS=OK")
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	r := chi.NewRouter()
	Routes(r, handler.NewNotifyHandler(testSecret, nil), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, NotifyPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/other", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
