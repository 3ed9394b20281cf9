// Package tabs maintains the open-tabs projection: which files are open,
// which one is active, and whether the active buffer has unsaved edits.
package tabs

import "storm/vfs"

// Tab is the lightweight projection of an open file. Unsaved marks the tab
// title with a trailing asterisk in the UI.
type Tab struct {
	ID       string
	Name     string
	Language string
	Unsaved  bool
}

// EditorSurface is the editing widget the projection drives. Implementations
// must tolerate being loaded and cleared at any time.
type EditorSurface interface {
	SetContent(content, language string)
	Content() string
	Clear()
}

// Projection tracks open tabs against the file system. The active id, when
// non-empty, always references an existing tab.
type Projection struct {
	files    *vfs.Manager
	surface  EditorSurface
	tabs     []*Tab
	activeID string

	// onChange is invoked after every tab mutation so the tab strip can
	// re-render.
	onChange func()
}

// NewProjection creates an empty projection over the given file manager and
// editing surface.
func NewProjection(files *vfs.Manager, surface EditorSurface) *Projection {
	return &Projection{files: files, surface: surface}
}

// OnChange registers the tab re-render hook.
func (p *Projection) OnChange(fn func()) { p.onChange = fn }

// Tabs returns the ordered tab list.
func (p *Projection) Tabs() []*Tab { return p.tabs }

// ActiveID returns the active tab's file id, or "" when no tab is active.
func (p *Projection) ActiveID() string { return p.activeID }

// OpenFile opens a tab for the file, or activates the existing one. The
// file's content and language are always pushed into the editing surface.
// Returns false for an unknown file id.
func (p *Projection) OpenFile(id string) bool {
	file := p.files.FindFileByID(id)
	if file == nil {
		return false
	}

	if p.findTab(id) == nil {
		p.tabs = append(p.tabs, &Tab{ID: file.ID, Name: file.Name, Language: file.Language})
	}
	p.activeID = id
	p.LoadFileContent(id)
	p.notify()
	return true
}

// CloseFile removes the tab for the file. When the active tab is closed the
// tab now at the same index becomes active (clamped); closing the last tab
// clears the surface and the active pointer. Returns false when no tab for
// the id exists.
func (p *Projection) CloseFile(id string) bool {
	index := -1
	for i, tab := range p.tabs {
		if tab.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	p.tabs = append(p.tabs[:index], p.tabs[index+1:]...)

	if p.activeID == id {
		if len(p.tabs) == 0 {
			p.activeID = ""
			if p.surface != nil {
				p.surface.Clear()
			}
		} else {
			if index >= len(p.tabs) {
				index = len(p.tabs) - 1
			}
			p.activeID = p.tabs[index].ID
			p.LoadFileContent(p.activeID)
		}
	}

	p.notify()
	return true
}

// LoadFileContent pushes the file's language and content into the editing
// surface. No-op when the file or the surface is unavailable.
func (p *Projection) LoadFileContent(id string) {
	file := p.files.FindFileByID(id)
	if file == nil || p.surface == nil {
		return
	}
	p.surface.SetContent(file.Content, file.Language)
}

// MarkDirty flags the active tab as unsaved. Called on every edit
// notification from the surface.
func (p *Projection) MarkDirty() {
	tab := p.findTab(p.activeID)
	if tab == nil || tab.Unsaved {
		return
	}
	tab.Unsaved = true
	p.notify()
}

// SaveActive writes the surface content back to the active file and clears
// the unsaved flag. Returns false when no tab is active.
func (p *Projection) SaveActive() bool {
	tab := p.findTab(p.activeID)
	if tab == nil || p.surface == nil {
		return false
	}
	if !p.files.SaveFile(tab.ID, p.surface.Content()) {
		return false
	}
	tab.Unsaved = false
	p.notify()
	return true
}

// EditorContent returns the surface's current buffer, or "" when no tab is
// active.
func (p *Projection) EditorContent() string {
	if p.activeID == "" || p.surface == nil {
		return ""
	}
	return p.surface.Content()
}

// SyncFile updates an open tab's name and language after a rename. No-op
// when the file has no tab.
func (p *Projection) SyncFile(id, name, language string) {
	tab := p.findTab(id)
	if tab == nil {
		return
	}
	tab.Name = name
	tab.Language = language
	if p.activeID == id {
		p.LoadFileContent(id)
	}
	p.notify()
}

// Title returns the display title for a tab, suffixing unsaved tabs with *.
func (t *Tab) Title() string {
	if t.Unsaved {
		return t.Name + "*"
	}
	return t.Name
}

func (p *Projection) findTab(id string) *Tab {
	if id == "" {
		return nil
	}
	for _, tab := range p.tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

func (p *Projection) notify() {
	if p.onChange != nil {
		p.onChange()
	}
}
