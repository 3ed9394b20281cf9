package tui

import (
	"strings"
	"unicode/utf8"
)

// editorSurface is the line-based text buffer behind the editor pane. It is
// the concrete editing surface the tab projection loads files into. The
// cursor column counts runes, not bytes, so multibyte text edits cleanly.
type editorSurface struct {
	lines    []string
	language string
	row      int
	col      int

	// onEdit fires on every content mutation so the active tab can be
	// marked unsaved.
	onEdit func()
}

func newEditorSurface() *editorSurface {
	return &editorSurface{lines: []string{""}}
}

func (e *editorSurface) SetContent(content, language string) {
	e.lines = strings.Split(content, "\n")
	e.language = language
	e.row = 0
	e.col = 0
}

func (e *editorSurface) Content() string {
	return strings.Join(e.lines, "\n")
}

func (e *editorSurface) Clear() {
	e.lines = []string{""}
	e.language = ""
	e.row = 0
	e.col = 0
}

func (e *editorSurface) Language() string {
	return e.language
}

func (e *editorSurface) lineLen() int {
	return utf8.RuneCountInString(e.lines[e.row])
}

func (e *editorSurface) edited() {
	if e.onEdit != nil {
		e.onEdit()
	}
}

func (e *editorSurface) insert(s string) {
	line := []rune(e.lines[e.row])
	e.lines[e.row] = string(line[:e.col]) + s + string(line[e.col:])
	e.col += utf8.RuneCountInString(s)
	e.edited()
}

func (e *editorSurface) newline() {
	line := []rune(e.lines[e.row])
	rest := string(line[e.col:])
	e.lines[e.row] = string(line[:e.col])
	e.lines = append(e.lines[:e.row+1], append([]string{rest}, e.lines[e.row+1:]...)...)
	e.row++
	e.col = 0
	e.edited()
}

func (e *editorSurface) backspace() {
	if e.col > 0 {
		line := []rune(e.lines[e.row])
		e.lines[e.row] = string(line[:e.col-1]) + string(line[e.col:])
		e.col--
		e.edited()
		return
	}
	if e.row == 0 {
		return
	}
	// Join with the previous line.
	prev := e.lines[e.row-1]
	e.lines[e.row-1] = prev + e.lines[e.row]
	e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
	e.row--
	e.col = utf8.RuneCountInString(prev)
	e.edited()
}

func (e *editorSurface) moveUp() {
	if e.row > 0 {
		e.row--
		e.clampCol()
	}
}

func (e *editorSurface) moveDown() {
	if e.row < len(e.lines)-1 {
		e.row++
		e.clampCol()
	}
}

func (e *editorSurface) moveLeft() {
	if e.col > 0 {
		e.col--
	} else if e.row > 0 {
		e.row--
		e.col = e.lineLen()
	}
}

func (e *editorSurface) moveRight() {
	if e.col < e.lineLen() {
		e.col++
	} else if e.row < len(e.lines)-1 {
		e.row++
		e.col = 0
	}
}

func (e *editorSurface) clampCol() {
	if n := e.lineLen(); e.col > n {
		e.col = n
	}
}
