package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusBadRequest, "Test error", errors.New("epay: invalid checksum"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Success || resp.Error != "epay: invalid checksum" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestWriteText(t *testing.T) {
	w := httptest.NewRecorder()

	WriteText(w, http.StatusOK, "INVOICE=1:STATUS=OK\n")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Errorf("Unexpected Content-Type %q", got)
	}
	if w.Body.String() != "INVOICE=1:STATUS=OK\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusCreated, map[string]string{"invoice": "42"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Unexpected Content-Type %q", got)
	}
	if w.Body.String() != "{\"invoice\":\"42\"}\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func BenchmarkErrorResponse(b *testing.B) {
	err := errors.New("epay: invalid checksum")

	for b.Loop() {
		w := httptest.NewRecorder()
		Error(w, http.StatusBadRequest, "Benchmark test", err)
	}
}
