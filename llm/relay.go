package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const relayBufferSize = 10

// RelayAdapter talks to keyless relay endpoints that proxy hosted chat
// models. Buffered relays replay a bounded window of prior turns with every
// request; one-shot relays send only the current turn.
type RelayAdapter struct {
	name     string
	url      string
	client   *http.Client
	buffer   *ConversationBuffer
	buffered bool
}

func NewRelayAdapter(name, url string, buffered bool, timeout time.Duration) *RelayAdapter {
	a := &RelayAdapter{
		name:     name,
		url:      url,
		client:   newHTTPClient(timeout),
		buffered: buffered,
	}
	if buffered {
		a.buffer = NewConversationBuffer(relayBufferSize)
	}
	return a
}

func (r *RelayAdapter) ModelName() string {
	return r.name
}

type relayRequest struct {
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

func (r *RelayAdapter) Send(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req.UserText, req.EditorSnapshot)

	// The user turn enters the buffer before the request: eviction happens
	// up front so the wire history never exceeds the cap, and a failed turn
	// stays in context for the next attempt.
	messages := []Message{{Role: RoleSystem, Content: SystemPrompt}}
	if r.buffered {
		r.buffer.Append(RoleUser, prompt)
		messages = append(messages, r.buffer.Messages()...)
	} else {
		messages = append(messages, Message{Role: RoleUser, Content: prompt})
	}

	body, err := json.Marshal(relayRequest{Messages: messages, Stream: false})
	if err != nil {
		return "", fmt.Errorf("marshal relay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url+"?full=true", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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

	text, err := ExtractMessage(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.name, err)
	}

	if r.buffered {
		r.buffer.Append(RoleAssistant, text)
	}
	return text, nil
}

func truncateBody(raw []byte) string {
	const max = 200
	if len(raw) > max {
		return string(raw[:max])
	}
	return string(raw)
}
