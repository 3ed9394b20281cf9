package vfs

import (
	"path/filepath"
	"strings"
)

// DefaultLanguage is used when neither the extension nor a hint resolves.
const DefaultLanguage = "plaintext"

var extensionLanguages = map[string]string{
	".html": "html",
	".htm":  "html",
	".css":  "css",
	".js":   "javascript",
	".ts":   "typescript",
	".json": "json",
	".py":   "python",
	".cs":   "csharp",
	".java": "java",
	".php":  "php",
	".rb":   "ruby",
	".md":   "markdown",
	".txt":  "plaintext",
}

// LanguageForFilename resolves the editing language for a file name: the
// extension table first, then the hint, then plaintext.
func LanguageForFilename(name, hint string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	if hint != "" {
		return hint
	}
	return DefaultLanguage
}

// Languages returns the set of selectable languages, for the language
// picker.
func Languages() []string {
	return []string{
		"plaintext", "html", "css", "javascript", "typescript",
		"json", "python", "csharp", "java", "php", "ruby", "markdown",
	}
}
