package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore persists each key as one file under a directory. Values are
// written whole on every Set, which is acceptable at the data volumes the
// editor produces.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements Store.Get.
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set implements Store.Set.
func (s *FileStore) Set(key, value string) error {
	if err := os.WriteFile(s.pathFor(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Remove implements Store.Remove. Removing a missing key is not an error.
func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.pathFor(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

// Keys implements Store.Keys, sorted for deterministic iteration.
func (s *FileStore) Keys() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".kv") {
			continue
		}
		key, err := decodeKey(strings.TrimSuffix(entry.Name(), ".kv"))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// pathFor maps a key to its backing file. Keys are URL-base64 encoded so
// arbitrary key strings stay filesystem-safe.
func (s *FileStore) pathFor(key string) string {
	return filepath.Join(s.dir, base64.URLEncoding.EncodeToString([]byte(key))+".kv")
}

func decodeKey(name string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(name)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
