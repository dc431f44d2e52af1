package service

import (
	"errors"
	"net/http"
	"testing"
)

func TestRelayError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RelayError
		want string
	}{
		{
			name: "without cause",
			err:  UpstreamRejected(http.StatusTooManyRequests, "rate limited"),
			want: "upstream_rejected (429): rate limited",
		},
		{
			name: "with cause",
			err:  MalformedRequest(errors.New("unexpected end of JSON input")),
			want: "malformed_request (400): Invalid request: messages array required: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("RelayError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRelayError_Constructors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name        string
		err         *RelayError
		wantKind    ErrorKind
		wantStatus  int
		wantMessage string
		sentinel    error
	}{
		{
			name:        "missing credential",
			err:         MissingCredential(),
			wantKind:    KindMissingCredential,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: MissingCredentialMessage,
			sentinel:    ErrMissingCredential,
		},
		{
			name:        "malformed request",
			err:         MalformedRequest(nil),
			wantKind:    KindMalformedRequest,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MalformedRequestMessage,
			sentinel:    ErrMalformedRequest,
		},
		{
			name:        "upstream rejected keeps status",
			err:         UpstreamRejected(http.StatusServiceUnavailable, "overloaded"),
			wantKind:    KindUpstreamRejected,
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "overloaded",
			sentinel:    ErrUpstreamRejected,
		},
		{
			name:        "internal fault describes cause",
			err:         InternalFault(cause),
			wantKind:    KindInternalFault,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server error: dial tcp: connection refused",
			sentinel:    ErrInternalFault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.wantKind)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.wantMessage)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
			if errors.Is(tt.err, errUnrelated) {
				t.Errorf("errors.Is() matched an unrelated sentinel")
			}
		})
	}

	if !errors.Is(InternalFault(cause), cause) {
		t.Error("InternalFault() should wrap its cause")
	}
}

var errUnrelated = errors.New("unrelated")

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindMissingCredential, "missing_credential"},
		{KindMalformedRequest, "malformed_request"},
		{KindUpstreamRejected, "upstream_rejected"},
		{KindInternalFault, "internal_fault"},
		{ErrorKind(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("original error"),
			msg:     "context",
			wantNil: false,
			wantMsg: "context: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Errorf("WrapError() = nil, want error")
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %v, want %v", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() should wrap original error")
			}
		})
	}
}
