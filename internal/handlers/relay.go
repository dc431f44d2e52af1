package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"chatrelay/internal/contextutil"
	"chatrelay/internal/service"
)

// APIKeyHeader carries the caller's own provider key.
const APIKeyHeader = "x-api-key"

// RelayHandler handles HTTP requests for the chat relay.
type RelayHandler struct {
	relayService service.RelayService
}

// NewRelayHandler creates a new RelayHandler.
func NewRelayHandler(relayService service.RelayService) *RelayHandler {
	return &RelayHandler{
		relayService: relayService,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP relays a chat request to the upstream provider.
//
// On success the upstream JSON body is written unchanged with status 200.
// Every failure is written as ErrorResponse with the status chosen by the service.
func (h *RelayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		// An unreadable body fails validation like an empty one.
		logger.WarnContext(ctx, "failed to read request body", "error", err)
		body = nil
	}

	result := h.relayService.Relay(ctx, service.RelayRequest{
		APIKey: r.Header.Get(APIKeyHeader),
		Body:   body,
	})
	if result.Err != nil {
		logger.DebugContext(ctx, "relay failed", "kind", result.Err.Kind.String(), "status", result.Err.Status)
		writeError(w, result.Err.Status, result.Err.Message)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Payload); err != nil {
		logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
