package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"chatrelay/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		now: time.Now,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Always "healthy" while the process can answer.
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// The relay never supplies its own key; callers must send x-api-key.
	RequiresClientKey bool `json:"requiresClientKey"`
}

// ServeHTTP reports liveness. It takes no input and cannot fail.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	response := HealthResponse{
		Status:            "healthy",
		Timestamp:         h.now().UTC().Format(time.RFC3339),
		RequiresClientKey: true,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
