package config

import (
	"os"
	"path/filepath"
	"testing"

	"storm/paths"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OpenRouterModel == "" {
		t.Error("expected default openrouter model")
	}
	if cfg.RequestTimeout <= 0 {
		t.Error("expected positive default timeout")
	}
	if cfg.MaxChats != 10 {
		t.Errorf("expected 10 max chats, got %d", cfg.MaxChats)
	}
	if !cfg.SeedWelcome {
		t.Error("expected welcome seeding on by default")
	}
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv(paths.EnvHome, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultLanguage != "plaintext" {
		t.Errorf("expected default language, got %s", cfg.DefaultLanguage)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv(paths.EnvHome, t.TempDir())

	cfg := DefaultConfig()
	cfg.OpenRouterModel = "meta-llama/llama-3-70b"
	cfg.RequestTimeout = 120

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.OpenRouterModel != "meta-llama/llama-3-70b" {
		t.Errorf("expected saved model, got %s", loaded.OpenRouterModel)
	}
	if loaded.RequestTimeout != 120 {
		t.Errorf("expected saved timeout, got %d", loaded.RequestTimeout)
	}
}

func TestPartialFileKeepsSeedWelcomeDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv(paths.EnvHome, home)

	if err := os.WriteFile(filepath.Join(home, "config.json"), []byte(`{"max_chats": 5}`), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxChats != 5 {
		t.Errorf("expected max_chats from file, got %d", cfg.MaxChats)
	}
	if !cfg.SeedWelcome {
		t.Error("expected seed_welcome to keep its default when the file omits it")
	}
}

func TestFileCanDisableSeedWelcome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(paths.EnvHome, home)

	if err := os.WriteFile(filepath.Join(home, "config.json"), []byte(`{"seed_welcome": false}`), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SeedWelcome {
		t.Error("expected seed_welcome disabled by file")
	}
}

func TestGetSet(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("request_timeout", "90"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := cfg.Get("request_timeout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 90 {
		t.Errorf("expected 90, got %v", got)
	}

	if err := cfg.Set("request_timeout", "not-a-number"); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
	if err := cfg.Set("seed_welcome", "false"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SeedWelcome {
		t.Error("expected seed_welcome false")
	}
	if err := cfg.Set("unknown_key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := cfg.Get("unknown_key"); err == nil {
		t.Error("expected error for unknown key")
	}
}
