package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"storm/chat"
	"storm/config"
	"storm/llm"
	"storm/storage"
)

type fakeSurface struct {
	content  string
	language string
}

func (f *fakeSurface) SetContent(content, language string) {
	f.content = content
	f.language = language
}
func (f *fakeSurface) Content() string { return f.content }
func (f *fakeSurface) Clear()          { f.content = ""; f.language = "" }

type stubDispatcher struct {
	lastModel string
	lastReq   llm.Request
	reply     string
	err       error
	calls     int
}

func (s *stubDispatcher) Send(_ context.Context, model string, req llm.Request) (string, error) {
	s.calls++
	s.lastModel = model
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestApp(t *testing.T) (*App, *fakeSurface, *stubDispatcher) {
	t.Helper()
	surface := &fakeSurface{}
	a := New(config.DefaultConfig(), storage.NewMemoryStore(), surface)
	stub := &stubDispatcher{reply: "assistant reply"}
	a.dispatcher = stub
	return a, surface, stub
}

func TestDeleteFileClosesTab(t *testing.T) {
	a, _, _ := newTestApp(t)

	file := a.Files.CreateFile("main.go", "", "package main", "")
	a.Tabs.OpenFile(file.ID)
	if len(a.Tabs.Tabs()) != 1 {
		t.Fatalf("expected 1 open tab, got %d", len(a.Tabs.Tabs()))
	}

	a.Files.DeleteFile(file.ID)
	if len(a.Tabs.Tabs()) != 0 {
		t.Error("expected tab to close when its file is deleted")
	}
}

func TestRenameFileSyncsTab(t *testing.T) {
	a, _, _ := newTestApp(t)

	file := a.Files.CreateFile("notes.txt", "", "x", "")
	a.Tabs.OpenFile(file.ID)
	a.Files.RenameFile(file.ID, "notes.py")

	tab := a.Tabs.Tabs()[0]
	if tab.Name != "notes.py" || tab.Language != "python" {
		t.Errorf("expected renamed tab with python language, got %s/%s", tab.Name, tab.Language)
	}
}

func TestSelectModelPersists(t *testing.T) {
	a, _, _ := newTestApp(t)

	if err := a.SelectModel(llm.ModelGemini); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.SelectedModel() != llm.ModelGemini {
		t.Errorf("expected gemini selected, got %s", a.SelectedModel())
	}
	stored, _ := a.Store.Get(storage.KeySelectedModel)
	if stored != llm.ModelGemini {
		t.Errorf("expected persisted selection, got %q", stored)
	}

	if err := a.SelectModel("bogus"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestSelectedModelDefaultsWhenUnset(t *testing.T) {
	a, _, _ := newTestApp(t)
	if a.SelectedModel() != llm.DefaultModel {
		t.Errorf("expected default model, got %s", a.SelectedModel())
	}
}

func TestSendChatMessage(t *testing.T) {
	a, surface, stub := newTestApp(t)
	surface.content = "func main() {}"

	file := a.Files.CreateFile("main.go", "", "func main() {}", "")
	a.Tabs.OpenFile(file.ID)

	if err := a.SendChatMessage(context.Background(), "explain this"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.SendState() != StateSucceeded {
		t.Errorf("expected succeeded state, got %d", a.SendState())
	}
	if stub.lastReq.EditorSnapshot != "func main() {}" {
		t.Errorf("expected editor snapshot in request, got %q", stub.lastReq.EditorSnapshot)
	}

	msgs := a.Chat.ActiveSession().Messages
	last := msgs[len(msgs)-1]
	if last.Sender != chat.SenderAI || last.Content != "assistant reply" {
		t.Errorf("expected assistant reply recorded, got %+v", last)
	}
}

func TestSendChatMessageEmptyInput(t *testing.T) {
	a, _, stub := newTestApp(t)

	if err := a.SendChatMessage(context.Background(), ""); err == nil {
		t.Error("expected error for empty message")
	}
	if stub.calls != 0 {
		t.Error("expected no dispatch for empty message")
	}
}

func TestSendChatMessageFailureLandsInChat(t *testing.T) {
	a, _, stub := newTestApp(t)
	stub.err = fmt.Errorf("Claude Sonnet endpoint is unavailable, please select another model")

	if err := a.SendChatMessage(context.Background(), "hi"); err != nil {
		t.Fatalf("expected failure handled in-session, got %v", err)
	}
	if a.SendState() != StateFailed {
		t.Errorf("expected failed state, got %d", a.SendState())
	}

	msgs := a.Chat.ActiveSession().Messages
	last := msgs[len(msgs)-1]
	if last.Sender != chat.SenderSystem {
		t.Errorf("expected system message, got %s", last.Sender)
	}
	if !strings.Contains(last.Content, "select another model") {
		t.Errorf("expected provider error text, got %q", last.Content)
	}
}

func TestSendChatMessageMissingKeySkipsDispatch(t *testing.T) {
	a, _, stub := newTestApp(t)
	a.SelectModel(llm.ModelGemini)

	if err := a.SendChatMessage(context.Background(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.calls != 0 {
		t.Error("expected no dispatch without an API key")
	}
	if a.SendState() != StateFailed {
		t.Errorf("expected failed state, got %d", a.SendState())
	}

	msgs := a.Chat.ActiveSession().Messages
	last := msgs[len(msgs)-1]
	if last.Sender != chat.SenderSystem || !strings.Contains(last.Content, "API key") {
		t.Errorf("expected missing-key notice, got %+v", last)
	}
}

func TestSendChatMessageBuildsContext(t *testing.T) {
	a, _, stub := newTestApp(t)

	a.SendChatMessage(context.Background(), "first")
	a.SendChatMessage(context.Background(), "second")

	ctx := stub.lastReq.Context
	// Welcome seeding adds an assistant greeting before the first turn.
	var texts []string
	for _, m := range ctx {
		texts = append(texts, m.Content)
	}
	joined := strings.Join(texts, "|")
	if !strings.Contains(joined, "first") || !strings.Contains(joined, "assistant reply") {
		t.Errorf("expected prior exchange in context, got %q", joined)
	}
	if strings.Contains(joined, "second") {
		t.Error("current turn must not appear in context")
	}
}

func TestSetKeysPersistsAndRebuilds(t *testing.T) {
	a, _, _ := newTestApp(t)

	if err := a.SetKeys(llm.KeySet{Gemini: "g"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Keys().Gemini != "g" {
		t.Error("expected key in memory")
	}
	if llm.LoadKeys(a.Store).Gemini != "g" {
		t.Error("expected key persisted")
	}
	if _, ok := a.dispatcher.(*llm.Dispatcher); !ok {
		t.Error("expected dispatcher rebuilt with new keys")
	}
}
