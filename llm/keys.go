package llm

import (
	"encoding/json"
	"fmt"

	"storm/storage"
)

// KeySet holds the caller-supplied provider credentials. Relay providers are
// keyless and have no entry here.
type KeySet struct {
	Gemini     string `json:"gemini"`
	OpenRouter string `json:"openrouter"`
}

// LoadKeys reads the stored key set. A missing or unreadable record yields an
// empty set rather than an error; keys are optional until a keyed provider is
// selected.
func LoadKeys(store storage.Store) KeySet {
	raw, ok := store.Get(storage.KeyAPIKeys)
	if !ok {
		return KeySet{}
	}
	var keys KeySet
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return KeySet{}
	}
	return keys
}

func SaveKeys(store storage.Store, keys KeySet) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("marshal api keys: %w", err)
	}
	if err := store.Set(storage.KeyAPIKeys, string(raw)); err != nil {
		return fmt.Errorf("persist api keys: %w", err)
	}
	return nil
}
