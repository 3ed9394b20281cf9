package tabs

import (
	"testing"

	"storm/storage"
	"storm/vfs"
)

// fakeSurface records what the projection pushes into the editor.
type fakeSurface struct {
	content  string
	language string
	cleared  bool
}

func (s *fakeSurface) SetContent(content, language string) {
	s.content = content
	s.language = language
	s.cleared = false
}

func (s *fakeSurface) Content() string { return s.content }

func (s *fakeSurface) Clear() {
	s.content = ""
	s.language = ""
	s.cleared = true
}

func newFixture(t *testing.T) (*vfs.Manager, *Projection, *fakeSurface) {
	t.Helper()
	files := vfs.NewManager(storage.NewMemoryStore())
	surface := &fakeSurface{}
	proj := NewProjection(files, surface)
	files.OnFileRemove(func(id string) { proj.CloseFile(id) })
	files.OnFileRename(proj.SyncFile)
	return files, proj, surface
}

func TestOpenFileActivatesAndLoads(t *testing.T) {
	files, proj, surface := newFixture(t)
	f := files.CreateFile("main.py", "", "print(1)", "")

	if !proj.OpenFile(f.ID) {
		t.Fatal("Expected open to succeed")
	}
	if proj.ActiveID() != f.ID {
		t.Errorf("Expected active id %s, got %s", f.ID, proj.ActiveID())
	}
	if surface.content != "print(1)" || surface.language != "python" {
		t.Errorf("Expected surface loaded, got %q/%q", surface.content, surface.language)
	}

	if proj.OpenFile("missing") {
		t.Error("Expected open of unknown id to fail")
	}
}

func TestOpenFileNeverDuplicatesTabs(t *testing.T) {
	files, proj, _ := newFixture(t)
	a := files.CreateFile("a.js", "", "", "")
	b := files.CreateFile("b.js", "", "", "")

	proj.OpenFile(a.ID)
	proj.OpenFile(b.ID)
	proj.OpenFile(a.ID)
	proj.OpenFile(a.ID)

	if len(proj.Tabs()) != 2 {
		t.Fatalf("Expected 2 tabs, got %d", len(proj.Tabs()))
	}
	seen := make(map[string]bool)
	for _, tab := range proj.Tabs() {
		if seen[tab.ID] {
			t.Errorf("Duplicate tab for %s", tab.ID)
		}
		seen[tab.ID] = true
	}
	if proj.ActiveID() != a.ID {
		t.Errorf("Expected reopening to activate, got %s", proj.ActiveID())
	}
}

func TestCloseFileActivatesNeighbor(t *testing.T) {
	files, proj, surface := newFixture(t)
	a := files.CreateFile("a.js", "", "aa", "")
	b := files.CreateFile("b.js", "", "bb", "")
	c := files.CreateFile("c.js", "", "cc", "")
	proj.OpenFile(a.ID)
	proj.OpenFile(b.ID)
	proj.OpenFile(c.ID)

	// Close the middle, active tab: the tab now at the same index wins.
	proj.OpenFile(b.ID)
	if !proj.CloseFile(b.ID) {
		t.Fatal("Expected close to succeed")
	}
	if proj.ActiveID() != c.ID {
		t.Errorf("Expected c active after closing b, got %s", proj.ActiveID())
	}

	// Close the last tab in the strip: index clamps to the new end.
	if !proj.CloseFile(c.ID) {
		t.Fatal("Expected close to succeed")
	}
	if proj.ActiveID() != a.ID {
		t.Errorf("Expected a active after closing c, got %s", proj.ActiveID())
	}

	// Closing the final tab clears everything.
	proj.CloseFile(a.ID)
	if proj.ActiveID() != "" {
		t.Errorf("Expected no active tab, got %s", proj.ActiveID())
	}
	if !surface.cleared {
		t.Error("Expected surface cleared after last close")
	}

	if proj.CloseFile(a.ID) {
		t.Error("Expected closing an unknown tab to fail")
	}
}

func TestActiveIDAlwaysReferencesTab(t *testing.T) {
	files, proj, _ := newFixture(t)

	var ids []string
	for _, name := range []string{"a.js", "b.js", "c.js", "d.js"} {
		ids = append(ids, files.CreateFile(name, "", "", "").ID)
	}

	ops := []struct {
		open bool
		id   string
	}{
		{true, ids[0]}, {true, ids[1]}, {false, ids[0]},
		{true, ids[2]}, {true, ids[3]}, {false, ids[3]},
		{false, ids[1]}, {true, ids[0]}, {false, ids[2]},
	}
	for _, op := range ops {
		if op.open {
			proj.OpenFile(op.id)
		} else {
			proj.CloseFile(op.id)
		}

		if active := proj.ActiveID(); active != "" {
			found := false
			for _, tab := range proj.Tabs() {
				if tab.ID == active {
					found = true
				}
			}
			if !found {
				t.Fatalf("Active id %s not in tab list", active)
			}
		}
	}
}

func TestDirtyTracking(t *testing.T) {
	files, proj, surface := newFixture(t)
	f := files.CreateFile("a.js", "", "old", "")
	proj.OpenFile(f.ID)

	tab := proj.Tabs()[0]
	if tab.Title() != "a.js" {
		t.Errorf("Expected clean title, got %s", tab.Title())
	}

	surface.content = "new"
	proj.MarkDirty()
	if !tab.Unsaved || tab.Title() != "a.js*" {
		t.Errorf("Expected unsaved title with asterisk, got %s", tab.Title())
	}

	if !proj.SaveActive() {
		t.Fatal("Expected save to succeed")
	}
	if tab.Unsaved || tab.Title() != "a.js" {
		t.Errorf("Expected clean title after save, got %s", tab.Title())
	}
	if files.FindFileByID(f.ID).Content != "new" {
		t.Error("Expected save to write surface content through")
	}
}

func TestDeleteFileClosesTab(t *testing.T) {
	files, proj, _ := newFixture(t)
	f := files.CreateFile("a.js", "", "", "")
	proj.OpenFile(f.ID)

	files.DeleteFile(f.ID)
	if len(proj.Tabs()) != 0 {
		t.Errorf("Expected tab closed on delete, got %d tabs", len(proj.Tabs()))
	}
}

func TestRenamePropagatesToTab(t *testing.T) {
	files, proj, surface := newFixture(t)
	f := files.CreateFile("a.txt", "", "x", "")
	proj.OpenFile(f.ID)

	files.RenameFile(f.ID, "a.py")

	tab := proj.Tabs()[0]
	if tab.Name != "a.py" || tab.Language != "python" {
		t.Errorf("Expected tab synced to a.py/python, got %s/%s", tab.Name, tab.Language)
	}
	if surface.language != "python" {
		t.Errorf("Expected surface reloaded with python, got %s", surface.language)
	}
}
