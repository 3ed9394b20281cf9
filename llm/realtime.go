package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RealtimeAdapter is a GET-style relay that threads a server-issued session
// id through consecutive requests so the remote end can keep context. A local
// buffer mirrors the last turns in case the session id is lost.
type RealtimeAdapter struct {
	name      string
	url       string
	client    *http.Client
	buffer    *ConversationBuffer
	sessionID string
}

func NewRealtimeAdapter(name, endpoint string, timeout time.Duration) *RealtimeAdapter {
	return &RealtimeAdapter{
		name:   name,
		url:    endpoint,
		client: newHTTPClient(timeout),
		buffer: NewConversationBuffer(relayBufferSize),
	}
}

func (r *RealtimeAdapter) ModelName() string {
	return r.name
}

type realtimeResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Send passes only the user text; the endpoint keeps context server-side
// via the session id, and an editor snapshot does not belong in a GET URL.
func (r *RealtimeAdapter) Send(ctx context.Context, req Request) (string, error) {
	q := url.Values{}
	q.Set("text", req.UserText)
	if r.sessionID != "" {
		q.Set("session_id", r.sessionID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", r.name, err)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", r.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", r.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: r.name, StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}

	var parsed realtimeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		text, exErr := ExtractMessage(raw)
		if exErr != nil {
			return "", fmt.Errorf("parse %s response: %w", r.name, err)
		}
		return text, nil
	}
	if parsed.SessionID != "" {
		r.sessionID = parsed.SessionID
	}
	if parsed.Message == "" {
		return "", fmt.Errorf("%s: empty message in response", r.name)
	}

	r.buffer.Append(RoleUser, req.UserText)
	r.buffer.Append(RoleAssistant, parsed.Message)
	return parsed.Message, nil
}
