package internal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHTTPRelayComplete(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{
			name:        "message content",
			contentType: "application/json",
			body:        `{"choices":[{"message":{"role":"assistant","content":"Step 1: cleanse."}}]}`,
			want:        "Step 1: cleanse.",
		},
		{
			name:        "text completion",
			contentType: "application/json",
			body:        `{"choices":[{"text":"Step 1: tone."}]}`,
			want:        "Step 1: tone.",
		},
		{
			name:        "unknown json shape is echoed",
			contentType: "application/json",
			body:        `{"result":"ok"}`,
			want:        `{"result":"ok"}`,
		},
		{
			name:        "plain text is echoed",
			contentType: "text/plain",
			body:        "just text",
			want:        "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			relay := NewHTTPRelay(server.URL, time.Second)
			got, err := relay.Complete(context.Background(), RelayRequest{
				Messages: []ConversationMessage{{Role: RoleUser, Content: "hi"}},
			})
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Complete() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPRelayRequestShape(t *testing.T) {
	var (
		gotBody   RelayRequest
		gotHeader http.Header
		gotMethod string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	relay := NewHTTPRelay(server.URL, time.Second)
	req := RelayRequest{
		Messages: []ConversationMessage{{Role: RoleSystem, Content: "rules"}, {Role: RoleUser, Content: "hi"}},
		Model:    "gpt-4o",
	}
	if _, err := relay.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if ct := gotHeader.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if _, err := uuid.Parse(gotHeader.Get("X-Request-ID")); err != nil {
		t.Errorf("X-Request-ID %q is not a uuid: %v", gotHeader.Get("X-Request-ID"), err)
	}
	if gotBody.Model != "gpt-4o" || len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != RoleSystem {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestHTTPRelayOmitsEmptyModel(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer server.Close()

	if _, err := NewHTTPRelay(server.URL, 0).Complete(context.Background(), RelayRequest{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["model"]; ok {
		t.Error("model should be omitted when empty")
	}
}

func TestHTTPRelayErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantReason string
	}{
		{"json error string", http.StatusBadRequest, `{"error":"invalid messages"}`, "invalid messages"},
		{"json error object", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"auth"}}`, "bad key"},
		{"plain text body", http.StatusBadGateway, "upstream timeout", "upstream timeout"},
		{"empty body", http.StatusServiceUnavailable, "", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := NewHTTPRelay(server.URL, time.Second).Complete(context.Background(), RelayRequest{})
			if !errors.Is(err, ErrRelayRequest) {
				t.Fatalf("Complete() error = %v, want ErrRelayRequest", err)
			}
			var rre *RelayRequestError
			if !errors.As(err, &rre) {
				t.Fatalf("error %T is not a RelayRequestError", err)
			}
			if rre.Status != tt.status {
				t.Errorf("Status = %d, want %d", rre.Status, tt.status)
			}
			if rre.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", rre.Reason, tt.wantReason)
			}
		})
	}
}

func TestHTTPRelayNotConfigured(t *testing.T) {
	relay := NewHTTPRelay("   ", time.Second)
	if relay.Configured() {
		t.Error("Configured() = true for a blank URL")
	}
	if _, err := relay.Complete(context.Background(), RelayRequest{}); !errors.Is(err, ErrRelayNotConfigured) {
		t.Errorf("Complete() error = %v, want ErrRelayNotConfigured", err)
	}
}

func TestHTTPRelayTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPRelay(url, time.Second).Complete(context.Background(), RelayRequest{})
	var rre *RelayRequestError
	if !errors.As(err, &rre) || rre.Status != 0 || rre.Err == nil {
		t.Errorf("Complete() error = %v, want a transport RelayRequestError", err)
	}
}

func TestHTTPRelayTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewHTTPRelay(server.URL, 50*time.Millisecond).Complete(context.Background(), RelayRequest{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Complete() error = %v, want deadline exceeded", err)
	}
}
