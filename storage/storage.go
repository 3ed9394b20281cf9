// Package storage provides the string key/value store backing all Storm
// Editor persistence: the file system snapshot, chat history, API keys,
// the selected model and transcription records.
package storage

// Well-known storage keys. They are kept compatible with earlier releases
// so existing user data keeps loading.
const (
	KeyFileSystem     = "stormEditorFileSystem"
	KeyChatHistory    = "stormEditorChatHistory"
	KeyAPIKeys        = "stormEditorApiKeys"
	KeySelectedModel  = "stormEditorSelectedModel"
	KeyTranscriptions = "stormEditorTranscriptions"

	// AudioKeyPrefix prefixes the per-transcription audio blob keys.
	AudioKeyPrefix = "audio_"
)

// AudioKey names the audio record for a transcription id.
func AudioKey(id string) string {
	return AudioKeyPrefix + id
}

// Store is a synchronous string key/value store. Get returns ok=false for
// missing keys; Set overwrites unconditionally (last write wins).
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Keys() []string
}
