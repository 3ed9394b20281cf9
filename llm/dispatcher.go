package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Model identifiers as persisted in the selected-model record.
const (
	ModelGemini         = "gemini"
	ModelOpenRouter     = "openrouter"
	ModelClaudeSonnet   = "paxsenixClaude"
	ModelGPT4O          = "paxsenixGPT4O"
	ModelPhi            = "phi"
	ModelFluxPro        = "paxsenixFluxPro"
	ModelGeminiRealtime = "geminiRealtime"
)

// DefaultModel is used when no selection has been persisted yet.
const DefaultModel = ModelClaudeSonnet

const (
	claudeRelayURL = "https://api.paxsenix.biz.id/ai/claudeSonnet"
	gpt4oRelayURL  = "https://api.paxsenix.biz.id/ai/gpt4o"
	phiRelayURL    = "https://api.paxsenix.biz.id/ai/phi"
	fluxRelayURL   = "https://api.paxsenix.biz.id/ai-image/fluxPro"
	realtimeURL    = "https://api.paxsenix.biz.id/ai/gemini-realtime"
)

// ModelInfo describes one selectable provider for pickers.
type ModelInfo struct {
	ID          string
	Label       string
	RequiresKey bool
}

// Models lists the selectable providers in display order.
func Models() []ModelInfo {
	return []ModelInfo{
		{ID: ModelClaudeSonnet, Label: "Claude Sonnet"},
		{ID: ModelGPT4O, Label: "GPT-4o"},
		{ID: ModelPhi, Label: "Phi"},
		{ID: ModelGemini, Label: "Gemini 2.0 Flash", RequiresKey: true},
		{ID: ModelOpenRouter, Label: "OpenRouter", RequiresKey: true},
		{ID: ModelGeminiRealtime, Label: "Gemini Realtime"},
		{ID: ModelFluxPro, Label: "Flux Pro (images)"},
	}
}

// DispatcherConfig carries credentials and tuning for adapter construction.
type DispatcherConfig struct {
	Keys            KeySet
	OpenRouterModel string
	Timeout         time.Duration
}

// Dispatcher routes a request to the adapter for the selected model. Adapters
// are built once and reused so buffered providers keep their history across
// turns.
type Dispatcher struct {
	adapters map[string]Adapter
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		adapters: map[string]Adapter{
			ModelGemini:         NewGeminiAdapter(cfg.Keys.Gemini, cfg.Timeout),
			ModelOpenRouter:     NewOpenRouterAdapter(cfg.Keys.OpenRouter, cfg.OpenRouterModel, cfg.Timeout),
			ModelClaudeSonnet:   NewRelayAdapter("Claude Sonnet", claudeRelayURL, true, cfg.Timeout),
			ModelGPT4O:          NewRelayAdapter("GPT-4o", gpt4oRelayURL, true, cfg.Timeout),
			ModelPhi:            NewRelayAdapter("Phi", phiRelayURL, false, cfg.Timeout),
			ModelFluxPro:        NewImageAdapter("Flux Pro", fluxRelayURL, cfg.Timeout),
			ModelGeminiRealtime: NewRealtimeAdapter("Gemini Realtime", realtimeURL, cfg.Timeout),
		},
	}
}

// Send routes one turn to the selected model's adapter.
func (d *Dispatcher) Send(ctx context.Context, model string, req Request) (string, error) {
	adapter, ok := d.adapters[model]
	if !ok {
		return "", fmt.Errorf("unsupported model: %s", model)
	}
	text, err := adapter.Send(ctx, req)
	if err != nil {
		return "", rewriteDispatchError(adapter, err)
	}
	return text, nil
}

// Adapter exposes the adapter for a model id, for callers that need to probe
// capabilities. Returns nil for unknown ids.
func (d *Dispatcher) Adapter(model string) Adapter {
	return d.adapters[model]
}

// rewriteDispatchError turns a provider 404 into guidance to switch models;
// relay endpoints come and go.
func rewriteDispatchError(adapter Adapter, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s endpoint is unavailable, please select another model", adapter.ModelName())
	}
	return err
}
