// Package vfs implements the in-memory virtual file system behind the
// editor: a tree of folders and files identified by generated ids,
// persisted whole to the key/value store on every mutation.
package vfs

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"storm/storage"
)

// File is the authoritative record for one editable file.
type File struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Content        string    `json:"content"`
	Language       string    `json:"language"`
	ParentFolderID string    `json:"parentFolderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Folder groups files and subfolders by id reference. Folders with no
// ParentFolderID form the tree roots.
type Folder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	FileIDs        []string  `json:"files"`
	FolderIDs      []string  `json:"folders"`
	ParentFolderID string    `json:"parentFolderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type snapshot struct {
	Files   []*File   `json:"files"`
	Folders []*Folder `json:"folders"`
}

// Manager owns the flat file and folder lists and keeps them persisted.
//
// Persistence failures are logged and swallowed: the in-memory state stays
// authoritative for the rest of the session.
type Manager struct {
	store   storage.Store
	files   []*File
	folders []*Folder

	// onChange is invoked after every successful mutation so the UI can
	// re-render the tree.
	onChange func()

	// onFileRemove is invoked before a file is removed (directly or via a
	// cascading folder delete) so any open tab can be closed first.
	onFileRemove func(fileID string)

	// onFileRename is invoked after a rename so open tabs can pick up the
	// new name and language.
	onFileRename func(fileID, name, language string)
}

// NewManager creates a manager loading any previous snapshot from the store.
// A corrupt snapshot is discarded and logged, starting empty.
func NewManager(store storage.Store) *Manager {
	m := &Manager{store: store}

	if raw, ok := store.Get(storage.KeyFileSystem); ok {
		var snap snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			log.Printf("vfs: discarding corrupt file system snapshot: %v", err)
		} else {
			m.files = snap.Files
			m.folders = snap.Folders
		}
	}

	return m
}

// OnChange registers the tree re-render hook.
func (m *Manager) OnChange(fn func()) { m.onChange = fn }

// OnFileRemove registers the pre-removal hook.
func (m *Manager) OnFileRemove(fn func(fileID string)) { m.onFileRemove = fn }

// OnFileRename registers the post-rename hook.
func (m *Manager) OnFileRename(fn func(fileID, name, language string)) { m.onFileRename = fn }

// Files returns the flat file list.
func (m *Manager) Files() []*File { return m.files }

// Folders returns the flat folder list.
func (m *Manager) Folders() []*Folder { return m.folders }

// CreateFile creates a file and registers it with its parent folder, if any.
// Returns nil when name is empty. Language is resolved from the extension,
// then languageHint, then plaintext; empty content gets the language template.
func (m *Manager) CreateFile(name, parentFolderID, content, languageHint string) *File {
	if name == "" {
		return nil
	}

	language := LanguageForFilename(name, languageHint)
	if content == "" {
		content = TemplateFor(language)
	}

	now := time.Now()
	file := &File{
		ID:             uuid.NewString(),
		Name:           name,
		Content:        content,
		Language:       language,
		ParentFolderID: parentFolderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	m.files = append(m.files, file)
	if parent := m.FindFolderByID(parentFolderID); parent != nil {
		parent.FileIDs = append(parent.FileIDs, file.ID)
	}

	m.persist()
	m.notify()
	return file
}

// CreateFolder creates a folder with empty child lists. Returns nil when
// name is empty.
func (m *Manager) CreateFolder(name, parentFolderID string) *Folder {
	if name == "" {
		return nil
	}

	folder := &Folder{
		ID:             uuid.NewString(),
		Name:           name,
		FileIDs:        []string{},
		FolderIDs:      []string{},
		ParentFolderID: parentFolderID,
		CreatedAt:      time.Now(),
	}

	m.folders = append(m.folders, folder)
	if parent := m.FindFolderByID(parentFolderID); parent != nil {
		parent.FolderIDs = append(parent.FolderIDs, folder.ID)
	}

	m.persist()
	m.notify()
	return folder
}

// FindFileByID returns the file with the given id, or nil.
func (m *Manager) FindFileByID(id string) *File {
	if id == "" {
		return nil
	}
	for _, f := range m.files {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// FindFolderByID returns the folder with the given id, or nil.
func (m *Manager) FindFolderByID(id string) *Folder {
	if id == "" {
		return nil
	}
	for _, f := range m.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// DeleteFile removes a file, closing its tab and detaching it from its
// parent folder first. Returns false for an unknown id.
func (m *Manager) DeleteFile(id string) bool {
	file := m.FindFileByID(id)
	if file == nil {
		return false
	}

	m.removeFile(file)
	m.persist()
	m.notify()
	return true
}

// DeleteFolder removes a folder and everything transitively contained in
// it. Returns false for an unknown id. The walk is iterative so arbitrarily
// deep trees cannot overflow the stack.
func (m *Manager) DeleteFolder(id string) bool {
	root := m.FindFolderByID(id)
	if root == nil {
		return false
	}

	doomed := map[string]bool{root.ID: true}
	stack := []*Folder{root}
	var folders []*Folder
	for len(stack) > 0 {
		folder := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		folders = append(folders, folder)

		for _, childID := range folder.FolderIDs {
			if child := m.FindFolderByID(childID); child != nil && !doomed[child.ID] {
				doomed[child.ID] = true
				stack = append(stack, child)
			}
		}
	}

	for _, folder := range folders {
		for _, fileID := range append([]string(nil), folder.FileIDs...) {
			if file := m.FindFileByID(fileID); file != nil {
				m.removeFile(file)
			}
		}
	}

	if parent := m.FindFolderByID(root.ParentFolderID); parent != nil {
		parent.FolderIDs = removeID(parent.FolderIDs, root.ID)
	}

	kept := m.folders[:0]
	for _, folder := range m.folders {
		if !doomed[folder.ID] {
			kept = append(kept, folder)
		}
	}
	m.folders = kept

	m.persist()
	m.notify()
	return true
}

// RenameFile renames a file, re-deriving its language from the new
// extension and propagating both to any open tab. Returns false for an
// unknown id or empty name.
func (m *Manager) RenameFile(id, newName string) bool {
	if newName == "" {
		return false
	}
	file := m.FindFileByID(id)
	if file == nil {
		return false
	}

	file.Name = newName
	file.Language = LanguageForFilename(newName, file.Language)
	file.UpdatedAt = time.Now()

	if m.onFileRename != nil {
		m.onFileRename(file.ID, file.Name, file.Language)
	}

	m.persist()
	m.notify()
	return true
}

// RenameFolder renames a folder. Returns false for an unknown id or empty
// name.
func (m *Manager) RenameFolder(id, newName string) bool {
	if newName == "" {
		return false
	}
	folder := m.FindFolderByID(id)
	if folder == nil {
		return false
	}

	folder.Name = newName
	m.persist()
	m.notify()
	return true
}

// SaveFile overwrites a file's content. Returns false for an unknown id.
func (m *Manager) SaveFile(id, content string) bool {
	file := m.FindFileByID(id)
	if file == nil {
		return false
	}

	file.Content = content
	file.UpdatedAt = time.Now()
	m.persist()
	return true
}

// removeFile closes the file's tab, detaches it from its parent and drops
// it from the flat list. Callers persist and notify.
func (m *Manager) removeFile(file *File) {
	if m.onFileRemove != nil {
		m.onFileRemove(file.ID)
	}
	if parent := m.FindFolderByID(file.ParentFolderID); parent != nil {
		parent.FileIDs = removeID(parent.FileIDs, file.ID)
	}

	kept := m.files[:0]
	for _, f := range m.files {
		if f.ID != file.ID {
			kept = append(kept, f)
		}
	}
	m.files = kept
}

func (m *Manager) persist() {
	snap := snapshot{Files: m.files, Folders: m.folders}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("vfs: failed to marshal file system snapshot: %v", err)
		return
	}
	if err := m.store.Set(storage.KeyFileSystem, string(data)); err != nil {
		log.Printf("vfs: failed to persist file system snapshot: %v", err)
	}
}

func (m *Manager) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
