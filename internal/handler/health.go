package handler

import (
	"database/sql"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var healthJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// HealthHandler handles liveness checks.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Check handles GET /health. The portal is healthy when its own store
// responds; backend availability is a per-page concern, not a liveness one.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}

	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = healthJSON.NewEncoder(w).Encode(status)
}
