package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single provider round trip at the transport level.
const DefaultTimeout = 60 * time.Second

// Message is one turn of provider-facing conversation context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request carries one user turn into an adapter. EditorSnapshot is the full
// buffer content at send time and may be empty. Context carries prior turns
// for adapters that accept structured history.
type Request struct {
	UserText       string
	EditorSnapshot string
	Context        []Message
}

// Adapter sends one request to a single provider endpoint and returns the
// assistant text. Adapters keep their own per-provider conversation state.
type Adapter interface {
	Send(ctx context.Context, req Request) (string, error)
	ModelName() string
}

// StatusError is a non-2xx provider response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned HTTP %d", e.Provider, e.StatusCode)
}

// MissingKeyError means the selected provider needs a stored credential and
// none is configured. Callers surface it in-conversation rather than failing.
type MissingKeyError struct {
	Provider string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
