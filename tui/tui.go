package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storm/app"
	"storm/chat"
	"storm/config"
	"storm/llm"
	"storm/paths"
	"storm/render"
	"storm/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#3B4252")).
			Padding(0, 1)

	focusedPaneStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#2563EB")).
				Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#374151")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	senderStyle = lipgloss.NewStyle().Bold(true)
)

type focusArea int

const (
	focusFiles focusArea = iota
	focusEditor
	focusChat
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewFile
	promptNewFolder
	promptRename
	promptGeminiKey
	promptOpenRouterKey
)

// chatDoneMsg signals that the provider round trip finished; the session
// already holds the outcome.
type chatDoneMsg struct{}

type model struct {
	app     *app.App
	surface *editorSurface

	focus       focusArea
	prompt      promptKind
	promptInput string
	renameID    string

	chatInput  string
	waiting    bool
	statusLine string

	treeCursor int
	width      int
	height     int
}

func newModel(a *app.App, surface *editorSurface) *model {
	m := &model{app: a, surface: surface, focus: focusChat}
	surface.onEdit = a.Tabs.MarkDirty
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case chatDoneMsg:
		m.waiting = false
		if m.app.SendState() == app.StateFailed {
			m.statusLine = "Request failed, see chat"
		} else {
			m.statusLine = ""
		}

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		return m, nil

	case "ctrl+s":
		if m.app.Tabs.SaveActive() {
			m.statusLine = "Saved"
		}
		return m, nil

	case "ctrl+w":
		if id := m.app.Tabs.ActiveID(); id != "" {
			m.app.Tabs.CloseFile(id)
		}
		return m, nil

	case "ctrl+p":
		m.cycleModel()
		return m, nil

	case "ctrl+t":
		m.app.Chat.NewChat()
		return m, nil

	case "ctrl+e":
		m.exportChat()
		return m, nil

	case "ctrl+g":
		m.prompt = promptGeminiKey
		return m, nil

	case "ctrl+o":
		m.prompt = promptOpenRouterKey
		return m, nil
	}

	switch m.focus {
	case focusFiles:
		return m.updateFilesKey(msg)
	case focusEditor:
		m.updateEditorKey(msg)
	case focusChat:
		return m.updateChatKey(msg)
	}
	return m, nil
}

func (m *model) updateFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := buildTree(m.app.Files)

	switch msg.String() {
	case "up", "k":
		if m.treeCursor > 0 {
			m.treeCursor--
		}
	case "down", "j":
		if m.treeCursor < len(entries)-1 {
			m.treeCursor++
		}
	case "enter":
		if entry := m.selectedEntry(entries); entry != nil && !entry.IsFolder {
			m.app.Tabs.OpenFile(entry.ID)
			m.focus = focusEditor
		}
	case "n":
		m.prompt = promptNewFile
	case "f":
		m.prompt = promptNewFolder
	case "r":
		if entry := m.selectedEntry(entries); entry != nil {
			m.prompt = promptRename
			m.renameID = entry.ID
			m.promptInput = entry.Name
		}
	case "d":
		if entry := m.selectedEntry(entries); entry != nil {
			if entry.IsFolder {
				m.app.Files.DeleteFolder(entry.ID)
			} else {
				m.app.Files.DeleteFile(entry.ID)
			}
			if m.treeCursor > 0 {
				m.treeCursor--
			}
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) selectedEntry(entries []treeEntry) *treeEntry {
	if m.treeCursor < 0 || m.treeCursor >= len(entries) {
		return nil
	}
	return &entries[m.treeCursor]
}

func (m *model) updateEditorKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up":
		m.surface.moveUp()
	case "down":
		m.surface.moveDown()
	case "left":
		m.surface.moveLeft()
	case "right":
		m.surface.moveRight()
	case "enter":
		m.surface.newline()
	case "backspace":
		m.surface.backspace()
	case "space":
		m.surface.insert(" ")
	default:
		if len(msg.Runes) > 0 {
			m.surface.insert(string(msg.Runes))
		}
	}
}

func (m *model) updateChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.chatInput)
		if text == "" || m.waiting {
			return m, nil
		}
		m.chatInput = ""
		m.waiting = true
		m.statusLine = "Thinking..."
		a := m.app
		return m, func() tea.Msg {
			a.SendChatMessage(context.Background(), text)
			return chatDoneMsg{}
		}
	case "backspace":
		m.chatInput = trimLastRune(m.chatInput)
	case "space":
		m.chatInput += " "
	default:
		if len(msg.Runes) > 0 {
			m.chatInput += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.promptInput = ""
	case "enter":
		m.applyPrompt()
	case "backspace":
		m.promptInput = trimLastRune(m.promptInput)
	case "space":
		m.promptInput += " "
	default:
		if len(msg.Runes) > 0 {
			m.promptInput += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) applyPrompt() {
	value := strings.TrimSpace(m.promptInput)

	switch m.prompt {
	case promptNewFile:
		if file := m.app.Files.CreateFile(value, m.selectedFolderID(), "", ""); file != nil {
			m.app.Tabs.OpenFile(file.ID)
		}
	case promptNewFolder:
		m.app.Files.CreateFolder(value, m.selectedFolderID())
	case promptRename:
		if m.app.Files.FindFileByID(m.renameID) != nil {
			m.app.Files.RenameFile(m.renameID, value)
		} else {
			m.app.Files.RenameFolder(m.renameID, value)
		}
	case promptGeminiKey:
		keys := m.app.Keys()
		keys.Gemini = value
		if err := m.app.SetKeys(keys); err != nil {
			m.statusLine = err.Error()
		}
	case promptOpenRouterKey:
		keys := m.app.Keys()
		keys.OpenRouter = value
		if err := m.app.SetKeys(keys); err != nil {
			m.statusLine = err.Error()
		}
	}

	m.prompt = promptNone
	m.promptInput = ""
	m.renameID = ""
}

// selectedFolderID returns the folder under the cursor so new entries land
// inside it; files and empty selections create at the root.
func (m *model) selectedFolderID() string {
	entries := buildTree(m.app.Files)
	if entry := m.selectedEntry(entries); entry != nil && entry.IsFolder {
		return entry.ID
	}
	return ""
}

// cycleModel advances the provider selection through the picker order.
func (m *model) cycleModel() {
	models := llm.Models()
	current := m.app.SelectedModel()
	for i, info := range models {
		if info.ID == current {
			next := models[(i+1)%len(models)]
			m.app.SelectModel(next.ID)
			m.statusLine = "Model: " + next.Label
			return
		}
	}
	if len(models) > 0 {
		m.app.SelectModel(models[0].ID)
	}
}

// exportChat renders the active session to an HTML file under ~/.storm.
func (m *model) exportChat() {
	session := m.app.Chat.ActiveSession()
	if session == nil || len(session.Messages) == 0 {
		m.statusLine = "Nothing to export"
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", session.Title)
	for _, msg := range session.Messages {
		fmt.Fprintf(&b, "<h4>%s</h4>\n%s\n", msg.Sender, render.Render(msg.Content))
	}

	if err := paths.EnsureStormDir(); err != nil {
		m.statusLine = err.Error()
		return
	}
	dir, err := paths.UserStormDir()
	if err != nil {
		m.statusLine = err.Error()
		return
	}
	path := filepath.Join(dir, "chat-"+session.ID+".html")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		m.statusLine = err.Error()
		return
	}
	m.statusLine = "Exported " + path
}

// Start launches the editor UI on top of the given config and store. When
// modelOverride names a known provider it replaces the persisted selection
// for this run.
func Start(cfg *config.Config, store storage.Store, modelOverride string) error {
	surface := newEditorSurface()
	a := app.New(cfg, store, surface)
	if modelOverride != "" {
		if err := a.SelectModel(modelOverride); err != nil {
			return err
		}
	}

	p := tea.NewProgram(newModel(a, surface), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// trimLastRune drops the final rune from an input string.
func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// senderLabel maps stored senders to their display names.
func senderLabel(s chat.Sender) string {
	switch s {
	case chat.SenderUser:
		return "You"
	case chat.SenderAI:
		return "AI"
	default:
		return "System"
	}
}
