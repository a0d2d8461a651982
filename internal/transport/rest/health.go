package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// indexStats exposes the in-memory lexicon size.
type indexStats interface {
	Len() int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      dbPinger
	index   indexStats
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, index indexStats, version string) *HealthHandler {
	return &HealthHandler{db: db, index: index, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Entries int    `json:"entries,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. The index is built before the server starts,
// so readiness only depends on the store: 200 if the ping succeeds, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: store ping with latency, index size and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	components := map[string]CompStatus{
		"lexicon": {Status: "ok", Entries: h.index.Len()},
	}
	overallStatus := "ok"

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		components["database"] = CompStatus{Status: "down"}
		overallStatus = "down"
	} else {
		components["database"] = CompStatus{
			Status:  "ok",
			Latency: latency.String(),
		}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
