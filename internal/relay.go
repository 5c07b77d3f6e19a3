package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RelayRequest is the body posted to the relay endpoint
type RelayRequest struct {
	Messages []ConversationMessage `json:"messages"`
	Model    string                `json:"model,omitempty"`
}

// Relay sends a message sequence to the AI backend and returns the assistant text
type Relay interface {
	Complete(ctx context.Context, req RelayRequest) (string, error)
}

// HTTPRelay posts requests to a single relay URL
type HTTPRelay struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTPRelay creates a relay for url. A zero timeout disables the deadline.
func NewHTTPRelay(url string, timeout time.Duration) *HTTPRelay {
	return &HTTPRelay{URL: strings.TrimSpace(url), Timeout: timeout}
}

// Configured reports whether the relay has an endpoint
func (r *HTTPRelay) Configured() bool {
	return r != nil && r.URL != ""
}

// Complete posts req and extracts the reply. No request is made when the URL is empty.
func (r *HTTPRelay) Complete(ctx context.Context, req RelayRequest) (string, error) {
	if !r.Configured() {
		return "", ErrRelayNotConfigured
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &RelayRequestError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return "", &RelayRequestError{Err: err}
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	LogDebug("Relay request %s: %d message(s), model %q", requestID, len(req.Messages), req.Model)
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", &RelayRequestError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RelayRequestError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RelayRequestError{
			Status: resp.StatusCode,
			Reason: relayErrorReason(data, resp.StatusCode),
		}
	}

	LogDebug("Relay request %s: %d byte response", requestID, len(data))
	return extractReply(data), nil
}

type relayResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// extractReply prefers choices[0].message.content, then choices[0].text, and
// otherwise returns the body unchanged
func extractReply(data []byte) string {
	var parsed relayResponse
	if err := json.Unmarshal(data, &parsed); err == nil && len(parsed.Choices) > 0 {
		first := parsed.Choices[0]
		if first.Message != nil && first.Message.Content != "" {
			return first.Message.Content
		}
		if first.Text != "" {
			return first.Text
		}
	}
	return string(data)
}

// relayErrorReason reads the server's error text: a JSON "error" string or
// error.message, else the raw body, else the status text
func relayErrorReason(data []byte, status int) string {
	var parsed struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && len(parsed.Error) > 0 {
		var s string
		if err := json.Unmarshal(parsed.Error, &s); err == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(parsed.Error, &obj); err == nil && obj.Message != "" {
			return obj.Message
		}
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return http.StatusText(status)
}
