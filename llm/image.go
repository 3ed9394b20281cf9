package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	fluxModel          = "flux-diffusion-v1"
	fluxWidth          = 1024
	fluxHeight         = 1024
	fluxNumImages      = 1
	fluxSteps          = 50
	fluxCFGScale       = 7.5
	fluxNegativePrompt = "low quality, blurry, ugly"
)

var imageURLPattern = regexp.MustCompile(`https://[^\s"']+\.(?:jpg|jpeg|png|webp)`)

// ImageAdapter turns a chat message into an image-generation request and
// formats the resulting URLs as markdown so the reply renders inline.
type ImageAdapter struct {
	name   string
	url    string
	client *http.Client
}

func NewImageAdapter(name, endpoint string, timeout time.Duration) *ImageAdapter {
	return &ImageAdapter{
		name:   name,
		url:    endpoint,
		client: newHTTPClient(timeout),
	}
}

func (a *ImageAdapter) ModelName() string {
	return a.name
}

type imageRequest struct {
	Prompt         string  `json:"prompt"`
	Model          string  `json:"model"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	NumImages      int     `json:"num_images"`
	Steps          int     `json:"steps"`
	CFGScale       float64 `json:"cfg_scale"`
	NegativePrompt string  `json:"negative_prompt"`
}

type imageResponse struct {
	Images []string `json:"images"`
	URLs   []string `json:"urls"`
	Image  string   `json:"image"`
	Data   struct {
		Images []string `json:"images"`
	} `json:"data"`
}

// Send treats the user text as the image prompt; the editor snapshot is
// irrelevant to generation and ignored.
func (a *ImageAdapter) Send(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(imageRequest{
		Prompt:         req.UserText,
		Model:          fluxModel,
		Width:          fluxWidth,
		Height:         fluxHeight,
		NumImages:      fluxNumImages,
		Steps:          fluxSteps,
		CFGScale:       fluxCFGScale,
		NegativePrompt: fluxNegativePrompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal image request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", a.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", a.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: a.name, StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}

	urls := extractImageURLs(raw)
	if len(urls) == 0 {
		return "", fmt.Errorf("%s: no image URLs in response", a.name)
	}
	return formatImageMarkdown(urls, req.UserText), nil
}

// extractImageURLs tries the known response shapes in order, then scans the
// raw body for anything that looks like an image URL.
func extractImageURLs(raw []byte) []string {
	var parsed imageResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case len(parsed.Images) > 0:
			return parsed.Images
		case len(parsed.Data.Images) > 0:
			return parsed.Data.Images
		case len(parsed.URLs) > 0:
			return parsed.URLs
		case parsed.Image != "":
			return []string{parsed.Image}
		}
	}
	return imageURLPattern.FindAllString(string(raw), -1)
}

func formatImageMarkdown(urls []string, prompt string) string {
	var b strings.Builder
	b.WriteString("### Generated Image")
	if len(urls) > 1 {
		b.WriteString("s")
	}
	b.WriteString("\n\n")
	for _, u := range urls {
		fmt.Fprintf(&b, "![Generated Image](%s)\n\n", u)
	}
	fmt.Fprintf(&b, "*Images generated based on prompt: \"%s\"*", prompt)
	return b.String()
}
