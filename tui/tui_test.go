package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"storm/app"
	"storm/config"
	"storm/storage"
	"storm/vfs"
)

func testModelWithFile(t *testing.T, content string) *model {
	t.Helper()
	surface := newEditorSurface()
	a := app.New(config.DefaultConfig(), storage.NewMemoryStore(), surface)
	file := a.Files.CreateFile("note.txt", "", content, "")
	a.Tabs.OpenFile(file.ID)
	return newModel(a, surface)
}

func TestWrapText(t *testing.T) {
	m := &model{width: 80, height: 24}

	testCases := []struct {
		name     string
		input    string
		width    int
		expected []string
	}{
		{
			name:     "Empty string",
			input:    "",
			width:    80,
			expected: []string{""},
		},
		{
			name:     "Short text",
			input:    "Hello world",
			width:    80,
			expected: []string{"Hello world"},
		},
		{
			name:     "Multi-line text",
			input:    "Hello\nworld",
			width:    80,
			expected: []string{"Hello", "world"},
		},
		{
			name:  "Long text that wraps",
			input: "This is a very long text that should wrap to multiple lines when the width is narrow",
			width: 20,
			expected: []string{
				"This is a very long",
				"text that should",
				"wrap to multiple",
				"lines when the width",
				"is narrow",
			},
		},
		{
			name:     "Zero width",
			input:    "Test text",
			width:    0,
			expected: []string{"Test text"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := m.wrapText(tc.input, tc.width)

			if len(result) != len(tc.expected) {
				t.Errorf("Expected %d lines, got %d. Result: %v", len(tc.expected), len(result), result)
				return
			}
			for i := 0; i < len(result); i++ {
				if result[i] != tc.expected[i] {
					t.Errorf("Line %d mismatch:\nExpected: %q\nGot:      %q", i, tc.expected[i], result[i])
				}
			}
		})
	}
}

func TestEditorSurfaceContentRoundTrip(t *testing.T) {
	e := newEditorSurface()
	e.SetContent("line one\nline two", "go")

	if e.Content() != "line one\nline two" {
		t.Errorf("unexpected content: %q", e.Content())
	}
	if e.Language() != "go" {
		t.Errorf("unexpected language: %q", e.Language())
	}

	e.Clear()
	if e.Content() != "" {
		t.Errorf("expected empty content after clear, got %q", e.Content())
	}
}

func TestEditorSurfaceEditing(t *testing.T) {
	var edits int
	e := newEditorSurface()
	e.onEdit = func() { edits++ }

	e.insert("hi")
	e.newline()
	e.insert("there")
	if e.Content() != "hi\nthere" {
		t.Errorf("unexpected content: %q", e.Content())
	}
	if edits != 3 {
		t.Errorf("expected 3 edit notifications, got %d", edits)
	}

	e.backspace()
	if e.Content() != "hi\nther" {
		t.Errorf("unexpected content after backspace: %q", e.Content())
	}
}

func TestEditorSurfaceBackspaceJoinsLines(t *testing.T) {
	e := newEditorSurface()
	e.SetContent("ab\ncd", "")
	e.row = 1
	e.col = 0

	e.backspace()
	if e.Content() != "abcd" {
		t.Errorf("expected joined line, got %q", e.Content())
	}
	if e.row != 0 || e.col != 2 {
		t.Errorf("expected cursor at join point, got row=%d col=%d", e.row, e.col)
	}
}

func TestEditorSurfaceCursorClamping(t *testing.T) {
	e := newEditorSurface()
	e.SetContent("long line\nx", "")
	e.col = 9

	e.moveDown()
	if e.col != 1 {
		t.Errorf("expected column clamped to short line, got %d", e.col)
	}

	e.moveUp()
	e.moveLeft()
	e.moveRight()
	if e.row != 0 {
		t.Errorf("expected cursor on first line, got row %d", e.row)
	}
}

func TestEditorSurfaceMultibyteEditing(t *testing.T) {
	e := newEditorSurface()
	e.insert("héllo")
	if e.col != 5 {
		t.Errorf("expected cursor after 5 runes, got %d", e.col)
	}

	e.backspace()
	e.backspace()
	e.backspace()
	e.backspace()
	if e.Content() != "h" {
		t.Errorf("expected single rune left, got %q", e.Content())
	}
	if !utf8.ValidString(e.Content()) {
		t.Error("backspace produced invalid UTF-8")
	}

	e.insert("日本語")
	e.moveLeft()
	e.insert("x")
	if e.Content() != "h日本x語" {
		t.Errorf("unexpected content: %q", e.Content())
	}
	if !utf8.ValidString(e.Content()) {
		t.Error("mid-rune insert produced invalid UTF-8")
	}
}

func TestEditorSurfaceMultibyteCursorClamp(t *testing.T) {
	e := newEditorSurface()
	e.SetContent("ääää\nü", "")
	e.col = 4

	e.moveDown()
	if e.col != 1 {
		t.Errorf("expected column clamped to 1 rune, got %d", e.col)
	}
	e.moveUp()
	e.newline()
	if e.lines[0] != "ä" || e.lines[1] != "äää" {
		t.Errorf("expected rune-aligned split, got %q / %q", e.lines[0], e.lines[1])
	}
}

func TestRenderBufferTruncatesOnRuneBoundary(t *testing.T) {
	m := testModelWithFile(t, strings.Repeat("ö", 40))

	out := m.renderBuffer(10, 5)
	if !utf8.ValidString(out) {
		t.Errorf("truncation split a rune: %q", out)
	}
	if got := utf8.RuneCountInString(out); got != 10 {
		t.Errorf("expected 10 runes, got %d", got)
	}
}

func TestWrapTextMultibyte(t *testing.T) {
	m := &model{}
	lines := m.wrapText(strings.TrimSpace(strings.Repeat("öö ", 10)), 7)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, line := range lines {
		if !utf8.ValidString(line) {
			t.Errorf("wrap split a rune: %q", line)
		}
		if utf8.RuneCountInString(line) > 7 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
}

func TestTrimLastRune(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "ab"},
		{"abä", "ab"},
		{"日本語", "日本"},
	}
	for _, tt := range tests {
		if got := trimLastRune(tt.in); got != tt.want {
			t.Errorf("trimLastRune(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestBuildTreeOrdersFoldersFirst(t *testing.T) {
	files := vfs.NewManager(storage.NewMemoryStore())
	files.CreateFile("zeta.go", "", "", "")
	folder := files.CreateFolder("src", "")
	files.CreateFile("alpha.go", folder.ID, "", "")

	entries := buildTree(files)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].IsFolder || entries[0].Name != "src" {
		t.Errorf("expected folder first, got %+v", entries[0])
	}
	if entries[1].Name != "alpha.go" || entries[1].Depth != 1 {
		t.Errorf("expected nested file second, got %+v", entries[1])
	}
	if entries[2].Name != "zeta.go" || entries[2].Depth != 0 {
		t.Errorf("expected root file last, got %+v", entries[2])
	}
}
