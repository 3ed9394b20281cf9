// Package app wires the stores, the tab projection and the provider
// dispatcher into one controller the front ends drive. All state changes go
// through here; the TUI only renders and forwards events.
package app

import (
	"context"
	"errors"
	"fmt"

	"storm/chat"
	"storm/config"
	"storm/llm"
	"storm/storage"
	"storm/tabs"
	"storm/transcript"
	"storm/vfs"
)

// SendState tracks the lifecycle of the in-flight chat request.
type SendState int

const (
	StateIdle SendState = iota
	StateSending
	StateSucceeded
	StateFailed
)

// dispatcher is what App needs from the provider layer.
type dispatcher interface {
	Send(ctx context.Context, model string, req llm.Request) (string, error)
}

// App owns all editor state.
type App struct {
	Config      *config.Config
	Store       storage.Store
	Files       *vfs.Manager
	Tabs        *tabs.Projection
	Chat        *chat.Store
	Transcripts *transcript.Store

	dispatcher    dispatcher
	keys          llm.KeySet
	selectedModel string
	sendState     SendState
}

// New builds the controller on top of a store and an editor surface, wiring
// file deletion and rename through to the open tabs.
func New(cfg *config.Config, store storage.Store, surface tabs.EditorSurface) *App {
	files := vfs.NewManager(store)
	projection := tabs.NewProjection(files, surface)
	files.OnFileRemove(func(id string) { projection.CloseFile(id) })
	files.OnFileRename(projection.SyncFile)

	keys := llm.LoadKeys(store)
	a := &App{
		Config: cfg,
		Store:  store,
		Files:  files,
		Tabs:   projection,
		Chat: chat.NewStore(store, chat.Options{
			MaxSessions: cfg.MaxChats,
			SeedWelcome: cfg.SeedWelcome,
		}),
		Transcripts:   transcript.NewStore(store),
		keys:          keys,
		selectedModel: loadSelectedModel(store),
	}
	a.rebuildDispatcher()
	return a
}

func loadSelectedModel(store storage.Store) string {
	if model, ok := store.Get(storage.KeySelectedModel); ok && model != "" {
		return model
	}
	return llm.DefaultModel
}

func (a *App) rebuildDispatcher() {
	a.dispatcher = llm.NewDispatcher(llm.DispatcherConfig{
		Keys:            a.keys,
		OpenRouterModel: a.Config.OpenRouterModel,
		Timeout:         a.Config.Timeout(),
	})
}

// SelectedModel returns the persisted provider selection.
func (a *App) SelectedModel() string {
	return a.selectedModel
}

// SelectModel switches the active provider and persists the choice.
func (a *App) SelectModel(model string) error {
	for _, m := range llm.Models() {
		if m.ID == model {
			a.selectedModel = model
			if err := a.Store.Set(storage.KeySelectedModel, model); err != nil {
				return fmt.Errorf("persist model selection: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("unsupported model: %s", model)
}

// Keys returns the configured provider credentials.
func (a *App) Keys() llm.KeySet {
	return a.keys
}

// SetKeys stores new provider credentials and rebuilds the adapters so the
// next request uses them.
func (a *App) SetKeys(keys llm.KeySet) error {
	if err := llm.SaveKeys(a.Store, keys); err != nil {
		return err
	}
	a.keys = keys
	a.rebuildDispatcher()
	return nil
}

// SendState reports where the current or last chat request got to.
func (a *App) SendState() SendState {
	return a.sendState
}

// SendChatMessage runs one full chat turn: record the user message, dispatch
// to the selected provider with the current editor snapshot, and record the
// reply. Provider failures land in the session as system messages instead of
// propagating; the returned error covers only empty input.
func (a *App) SendChatMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("empty message")
	}

	a.sendState = StateSending
	a.Chat.AddMessage(text, chat.SenderUser)

	if model := a.modelInfo(); model != nil && model.RequiresKey && !a.hasKeyFor(model.ID) {
		a.sendState = StateFailed
		a.Chat.AddMessage(fmt.Sprintf("No API key configured for %s. Add one in settings to use this model.", model.Label), chat.SenderSystem)
		return nil
	}

	reply, err := a.dispatcher.Send(ctx, a.selectedModel, llm.Request{
		UserText:       text,
		EditorSnapshot: a.Tabs.EditorContent(),
		Context:        a.conversationContext(),
	})
	if err != nil {
		a.sendState = StateFailed
		a.Chat.AddMessage(rewriteSendError(err), chat.SenderSystem)
		return nil
	}

	a.sendState = StateSucceeded
	a.Chat.AddMessage(reply, chat.SenderAI)
	return nil
}

func (a *App) modelInfo() *llm.ModelInfo {
	for _, m := range llm.Models() {
		if m.ID == a.selectedModel {
			return &m
		}
	}
	return nil
}

func (a *App) hasKeyFor(model string) bool {
	switch model {
	case llm.ModelGemini:
		return a.keys.Gemini != ""
	case llm.ModelOpenRouter:
		return a.keys.OpenRouter != ""
	}
	return true
}

// conversationContext maps the active session into provider roles, skipping
// system notices. The current user turn is not included; the adapter appends
// it.
func (a *App) conversationContext() []llm.Message {
	session := a.Chat.ActiveSession()
	if session == nil {
		return nil
	}
	msgs := session.Messages
	if len(msgs) > 0 && msgs[len(msgs)-1].Sender == chat.SenderUser {
		msgs = msgs[:len(msgs)-1]
	}
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		switch m.Sender {
		case chat.SenderUser:
			out = append(out, llm.Message{Role: llm.RoleUser, Content: m.Content})
		case chat.SenderAI:
			out = append(out, llm.Message{Role: llm.RoleAssistant, Content: m.Content})
		}
	}
	return out
}

// rewriteSendError turns provider failures into text fit for a chat bubble.
func rewriteSendError(err error) string {
	var missing *llm.MissingKeyError
	if errors.As(err, &missing) {
		return fmt.Sprintf("No API key configured for %s. Add one in settings to use this model.", missing.Provider)
	}
	return fmt.Sprintf("Error: %s", err.Error())
}
