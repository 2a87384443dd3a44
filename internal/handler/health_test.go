package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck(t *testing.T) {
	db := testEventDB(t)

	h := NewHealthHandler(db)
	req := httptest.NewRequest(http.MethodGet, RouteHealth, nil)
	w := httptest.NewRecorder()
	h.Check(w, req)

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("status = %q; want ok", status.Status)
	}
}

func TestHealthCheckDegraded(t *testing.T) {
	db := testEventDB(t)
	_ = db.Close()

	h := NewHealthHandler(db)
	req := httptest.NewRequest(http.MethodGet, RouteHealth, nil)
	w := httptest.NewRecorder()
	h.Check(w, req)

	assertStatus(t, w.Code, http.StatusServiceUnavailable)

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("status = %q; want degraded", status.Status)
	}
}
