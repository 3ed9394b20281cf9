package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the storm home directory when set. Used by tests and
// by users who want per-project state.
const EnvHome = "STORM_HOME"

// UserStormDir returns the user-level storm directory (~/.storm), or the
// value of STORM_HOME when set.
func UserStormDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".storm"), nil
}

// StorageDir returns the directory backing the key/value store.
func StorageDir() (string, error) {
	dir, err := UserStormDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storage"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := UserStormDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureStormDir creates the storm directory tree if it doesn't exist.
func EnsureStormDir() error {
	storageDir, err := StorageDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(storageDir, 0755)
}
