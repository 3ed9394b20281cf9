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

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// GeminiAdapter talks to the Gemini generateContent endpoint. Each request is
// a single prompt blob carrying the editor snapshot and the question; the
// endpoint holds no conversation state on our side.
type GeminiAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGeminiAdapter(apiKey string, timeout time.Duration) *GeminiAdapter {
	return &GeminiAdapter{
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		client:  newHTTPClient(timeout),
	}
}

func (g *GeminiAdapter) ModelName() string {
	return "Gemini 2.0 Flash"
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAdapter) Send(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", &MissingKeyError{Provider: "Gemini"}
	}

	prompt := BuildPrompt(req.UserText, req.EditorSnapshot)
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", g.baseURL, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "Gemini", StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("unexpected gemini response format")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
