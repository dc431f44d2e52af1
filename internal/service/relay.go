package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_upstream.go -package=mocks chatrelay/internal/service Upstream
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_relay_service.go -package=mocks -mock_names=RelayService=MockRelayService chatrelay/internal/service RelayService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"chatrelay/internal/contextutil"
	"chatrelay/internal/llm"
)

const (
	// DefaultSystemPrompt is sent when the caller supplies no system prompt.
	DefaultSystemPrompt = "You are a helpful trading analysis assistant."
	// DefaultMaxTokens is sent when the caller supplies no max_tokens.
	DefaultMaxTokens = 500
)

// Upstream is an interface for sending a prepared request to the chat provider.
// This interface is defined from the service layer's perspective (consumer-first).
type Upstream interface {
	// CreateMessage posts payload using apiKey and returns the raw reply.
	CreateMessage(ctx context.Context, apiKey string, payload llm.MessagesRequest) (*llm.Response, error)
}

// RelayRequest is an inbound chat request as received from the browser.
type RelayRequest struct {
	APIKey string
	Body   []byte
}

// Result is the outcome of a relay: exactly one of Payload or Err is set.
type Result struct {
	Payload json.RawMessage
	Err     *RelayError
}

// Status returns the HTTP status the result maps to.
func (r Result) Status() int {
	if r.Err != nil {
		return r.Err.Status
	}
	return http.StatusOK
}

// RelayService forwards chat requests to the upstream provider.
type RelayService interface {
	// Relay validates req, forwards it and classifies the reply.
	Relay(ctx context.Context, req RelayRequest) Result
}

// chatRequest is the body accepted from the browser. Only messages is
// required; the other fields are forwarded without inspection.
type chatRequest struct {
	Messages  json.RawMessage `json:"messages"`
	System    json.RawMessage `json:"system"`
	MaxTokens json.RawMessage `json:"max_tokens"`
}

// relayService implements RelayService.
type relayService struct {
	upstream Upstream
}

// NewRelayService creates a new RelayService.
func NewRelayService(upstream Upstream) RelayService {
	return &relayService{
		upstream: upstream,
	}
}

// Relay forwards a chat request. Checks run in order and the first failure wins.
func (s *relayService) Relay(ctx context.Context, req RelayRequest) Result {
	logger := contextutil.LoggerFromContext(ctx)

	if req.APIKey == "" {
		logger.WarnContext(ctx, "chat request without api key")
		return Result{Err: MissingCredential()}
	}

	payload, err := buildPayload(req.Body)
	if err != nil {
		logger.WarnContext(ctx, "invalid chat request", "error", err)
		return Result{Err: MalformedRequest(err)}
	}

	logger.InfoContext(ctx, "proxying request to upstream", "model", payload.Model)

	resp, err := s.upstream.CreateMessage(ctx, req.APIKey, payload)
	if err != nil {
		logger.ErrorContext(ctx, "upstream request failed", "error", err)
		return Result{Err: InternalFault(err)}
	}

	if !resp.OK() {
		msg, ok := llm.ErrorMessage(resp.Body)
		if !ok {
			msg = fmt.Sprintf("Anthropic API error: %d", resp.StatusCode)
		}
		logger.ErrorContext(ctx, "upstream api error", "status", resp.StatusCode, "body", string(resp.Body))
		return Result{Err: UpstreamRejected(resp.StatusCode, msg)}
	}

	var out json.RawMessage
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		logger.ErrorContext(ctx, "upstream returned invalid json", "error", err)
		return Result{Err: InternalFault(WrapError(err, "invalid upstream response"))}
	}

	logger.InfoContext(ctx, "upstream response received", "status", resp.StatusCode, "bytes", len(out))
	return Result{Payload: out}
}

// buildPayload parses the browser body and applies defaults.
func buildPayload(body []byte) (llm.MessagesRequest, error) {
	var cr chatRequest
	if err := json.Unmarshal(body, &cr); err != nil {
		return llm.MessagesRequest{}, err
	}

	var messages []json.RawMessage
	if err := json.Unmarshal(cr.Messages, &messages); err != nil {
		return llm.MessagesRequest{}, fmt.Errorf("messages: %w", err)
	}
	if len(messages) == 0 {
		return llm.MessagesRequest{}, errors.New("messages: empty")
	}

	system := cr.System
	if isUnset(system) || string(system) == `""` {
		system, _ = json.Marshal(DefaultSystemPrompt)
	}

	maxTokens := cr.MaxTokens
	if isUnset(maxTokens) {
		maxTokens, _ = json.Marshal(DefaultMaxTokens)
	}

	return llm.MessagesRequest{
		Model:     llm.Model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  cr.Messages,
	}, nil
}

// isUnset reports whether a raw field was absent or null.
func isUnset(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
