package llm

import "fmt"

// SystemPrompt frames every chat-capable provider the same way.
const SystemPrompt = "You are an expert coding assistant. Help users write, understand, and debug code with clear explanations and best practices."

// BuildPrompt folds the editor snapshot into the user's question. With no
// snapshot the question passes through untouched.
func BuildPrompt(userText, editorSnapshot string) string {
	if editorSnapshot == "" {
		return userText
	}
	return fmt.Sprintf("Current code in editor:\n```\n%s\n```\n\nUser question: %s", editorSnapshot, userText)
}
