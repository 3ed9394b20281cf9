package tui

import (
	"sort"

	"storm/vfs"
)

// treeEntry is one visible row of the file pane.
type treeEntry struct {
	ID       string
	Name     string
	IsFolder bool
	Depth    int
}

// buildTree flattens the folder hierarchy into display order: folders first,
// then files, both alphabetical, children indented under their folder.
func buildTree(files *vfs.Manager) []treeEntry {
	var out []treeEntry

	byFolder := map[string][]*vfs.File{}
	for _, f := range files.Files() {
		byFolder[f.ParentFolderID] = append(byFolder[f.ParentFolderID], f)
	}
	childFolders := map[string][]*vfs.Folder{}
	for _, f := range files.Folders() {
		childFolders[f.ParentFolderID] = append(childFolders[f.ParentFolderID], f)
	}

	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		folders := childFolders[parentID]
		sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
		for _, folder := range folders {
			out = append(out, treeEntry{ID: folder.ID, Name: folder.Name, IsFolder: true, Depth: depth})
			walk(folder.ID, depth+1)
		}

		leafs := byFolder[parentID]
		sort.Slice(leafs, func(i, j int) bool { return leafs[i].Name < leafs[j].Name })
		for _, file := range leafs {
			out = append(out, treeEntry{ID: file.ID, Name: file.Name, Depth: depth})
		}
	}
	walk("", 0)
	return out
}
