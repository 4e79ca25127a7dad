package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

const Version = "2.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger *slog.Logger
	policy map[string]string
}

// NewHealthHandler creates a new health handler reporting the active order policy
func NewHealthHandler(logger *slog.Logger, policy map[string]string) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		policy: policy,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Policy    map[string]string `json:"policy,omitempty"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Policy:    h.policy,
	}, h.logger)
}
