package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"storm/llm"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	treeWidth     = 24
	chatWidth     = 36
)

func (m *model) View() string {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	height := m.height
	if height == 0 {
		height = defaultHeight
	}

	title := titleStyle.Render("Storm Editor")
	modelLabel := m.modelLabel()
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, helpStyle.Render("  model: "+modelLabel))

	paneHeight := height - 6
	if paneHeight < 8 {
		paneHeight = 8
	}
	editorWidth := width - treeWidth - chatWidth - 8
	if editorWidth < 20 {
		editorWidth = 20
	}

	tree := m.stylePane(focusFiles).Width(treeWidth).Height(paneHeight).Render(m.renderTree(paneHeight))
	editor := m.stylePane(focusEditor).Width(editorWidth).Height(paneHeight).Render(m.renderEditor(editorWidth, paneHeight))
	chatPane := m.stylePane(focusChat).Width(chatWidth).Height(paneHeight).Render(m.renderChat(chatWidth, paneHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, editor, chatPane)

	var footer string
	if m.prompt != promptNone {
		footer = m.renderPrompt()
	} else {
		footer = helpStyle.Render(m.helpText())
	}
	if m.statusLine != "" {
		footer = m.statusLine + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *model) stylePane(area focusArea) lipgloss.Style {
	if m.focus == area {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m *model) modelLabel() string {
	for _, info := range llm.Models() {
		if info.ID == m.app.SelectedModel() {
			return info.Label
		}
	}
	return m.app.SelectedModel()
}

func (m *model) renderTree(height int) string {
	entries := buildTree(m.app.Files)
	if len(entries) == 0 {
		return "No files yet\n\nPress n to create one"
	}

	var lines []string
	for i, entry := range entries {
		indent := strings.Repeat("  ", entry.Depth)
		name := entry.Name
		if entry.IsFolder {
			name += "/"
		}
		line := indent + name
		if i == m.treeCursor && m.focus == focusFiles {
			line = activeTabStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderEditor(width, height int) string {
	var tabLine []string
	for _, tab := range m.app.Tabs.Tabs() {
		style := tabStyle
		if tab.ID == m.app.Tabs.ActiveID() {
			style = activeTabStyle
		}
		tabLine = append(tabLine, style.Render(tab.Title()))
	}

	header := "No file open"
	if len(tabLine) > 0 {
		header = lipgloss.JoinHorizontal(lipgloss.Top, tabLine...)
	}

	content := m.renderBuffer(width, height-2)
	return header + "\n" + content
}

// renderBuffer shows the editor lines around the cursor with a visible
// cursor cell on the active line.
func (m *model) renderBuffer(width, height int) string {
	if m.app.Tabs.ActiveID() == "" {
		return helpStyle.Render("Open a file from the tree (tab to switch panes)")
	}

	lines := m.surface.lines
	start := 0
	if m.surface.row >= height {
		start = m.surface.row - height + 1
	}

	var out []string
	for i := start; i < len(lines) && i-start < height; i++ {
		runes := []rune(lines[i])
		if i == m.surface.row && m.focus == focusEditor {
			col := m.surface.col
			if col > len(runes) {
				col = len(runes)
			}
			withCursor := make([]rune, 0, len(runes)+1)
			withCursor = append(withCursor, runes[:col]...)
			withCursor = append(withCursor, '█')
			withCursor = append(withCursor, runes[col:]...)
			runes = withCursor
		}
		if len(runes) > width {
			runes = runes[:width]
		}
		out = append(out, string(runes))
	}
	return strings.Join(out, "\n")
}

func (m *model) renderChat(width, height int) string {
	session := m.app.Chat.ActiveSession()

	var lines []string
	if session != nil {
		lines = append(lines, senderStyle.Render(session.Title))
		lines = append(lines, "")
		for _, msg := range session.Messages {
			lines = append(lines, senderStyle.Render(senderLabel(msg.Sender)+":"))
			lines = append(lines, m.wrapText(msg.Content, width-2)...)
			lines = append(lines, "")
		}
	}

	if m.waiting {
		lines = append(lines, helpStyle.Render("Thinking..."))
	}

	// Keep the newest messages and the input in view.
	inputLine := "> " + m.chatInput
	if m.focus == focusChat && !m.waiting {
		inputLine += "█"
	}
	avail := height - 2
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}

	return strings.Join(lines, "\n") + "\n" + inputLine
}

func (m *model) renderPrompt() string {
	label := map[promptKind]string{
		promptNewFile:       "New file name",
		promptNewFolder:     "New folder name",
		promptRename:        "Rename to",
		promptGeminiKey:     "Gemini API key",
		promptOpenRouterKey: "OpenRouter API key",
	}[m.prompt]
	return fmt.Sprintf("%s: %s█  (enter to confirm, esc to cancel)", label, m.promptInput)
}

func (m *model) helpText() string {
	switch m.focus {
	case focusFiles:
		return "enter open • n new file • f new folder • r rename • d delete • tab switch pane • ctrl+c quit"
	case focusEditor:
		return "ctrl+s save • ctrl+w close tab • tab switch pane • ctrl+c quit"
	default:
		return "enter send • ctrl+t new chat • ctrl+p model • ctrl+e export • ctrl+g/ctrl+o keys • tab switch pane"
	}
}

// wrapText breaks text into lines no wider than width runes, preserving
// existing line breaks.
func (m *model) wrapText(text string, width int) []string {
	if width <= 0 {
		width = defaultWidth
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) <= width {
			out = append(out, line)
			continue
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, string([]rune(line)[:width]))
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) > width {
				out = append(out, current)
				current = word
				continue
			}
			current += " " + word
		}
		out = append(out, current)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
