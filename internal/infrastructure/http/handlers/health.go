package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service liveness
type HealthHandler struct {
	service string
	version string
	db      Pinger
	started time.Time
	logger  *zap.Logger
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Database  string `json:"database"`
	Uptime    string `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(service, version string, db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
		db:      db,
		started: time.Now(),
		logger:  logger.Named("health"),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Service:   h.service,
		Version:   h.version,
		Database:  "unknown",
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Timestamp: time.Now().Unix(),
	}
	code := http.StatusOK

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("Database ping failed", zap.Error(err))
			status.Status = "degraded"
			status.Database = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			status.Database = "ok"
		}
	}

	writeJSON(w, code, APIResponse{
		Success: code == http.StatusOK,
		Data:    status,
	})
}
