package llm

import "encoding/json"

// MessagesRequest represents the request payload for the Messages API.
// MaxTokens, System and Messages are kept raw so caller-supplied values
// reach the upstream byte for byte.
type MessagesRequest struct {
	Model     string          `json:"model"`
	MaxTokens json.RawMessage `json:"max_tokens"`
	System    json.RawMessage `json:"system"`
	Messages  json.RawMessage `json:"messages"`
}

// Response is an upstream reply that has not been interpreted yet.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorBody is the error payload returned by the Messages API.
type ErrorBody struct {
	Type  string `json:"type"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ErrorMessage returns the nested error message from an upstream error body.
// ok is false when the body is not JSON or carries no usable message.
func ErrorMessage(body []byte) (msg string, ok bool) {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", false
	}
	if eb.Error == nil || eb.Error.Message == "" {
		return "", false
	}
	return eb.Error.Message, true
}
