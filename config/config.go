package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"storm/paths"
)

// Config represents the storm configuration
type Config struct {
	OpenRouterModel string `json:"openrouter_model"` // Model slug sent to OpenRouter
	RequestTimeout  int    `json:"request_timeout"`  // Provider request timeout in seconds
	MaxChats        int    `json:"max_chats"`        // Chat sessions kept in history
	DefaultLanguage string `json:"default_language"` // Language for files without a known extension
	SeedWelcome     bool   `json:"seed_welcome"`     // Start new chats with a greeting
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		OpenRouterModel: "anthropic/claude-sonnet-4",
		RequestTimeout:  60,
		MaxChats:        10,
		DefaultLanguage: "plaintext",
		SeedWelcome:     true,
	}
}

// LoadConfig loads configuration from ~/.storm/config.json, falling back to
// defaults for anything unset.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := paths.ConfigPath()
	if err != nil {
		return cfg, nil
	}

	stored, err := loadConfigFromFile(configPath)
	if err == nil {
		mergeCfg(cfg, stored)
	}

	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "openrouter_model":
		return c.OpenRouterModel, nil
	case "request_timeout":
		return c.RequestTimeout, nil
	case "max_chats":
		return c.MaxChats, nil
	case "default_language":
		return c.DefaultLanguage, nil
	case "seed_welcome":
		return c.SeedWelcome, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// Convert value to string (CLI input is always string)
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "openrouter_model":
		c.OpenRouterModel = str
		return nil
	case "request_timeout":
		val, err := strconv.Atoi(str)
		if err != nil || val <= 0 {
			return fmt.Errorf("expected positive number for request_timeout, got: %s", str)
		}
		c.RequestTimeout = val
		return nil
	case "max_chats":
		val, err := strconv.Atoi(str)
		if err != nil || val <= 0 {
			return fmt.Errorf("expected positive number for max_chats, got: %s", str)
		}
		c.MaxChats = val
		return nil
	case "default_language":
		c.DefaultLanguage = str
		return nil
	case "seed_welcome":
		switch str {
		case "true":
			c.SeedWelcome = true
		case "false":
			c.SeedWelcome = false
		default:
			return fmt.Errorf("expected 'true' or 'false' for seed_welcome, got: %s", str)
		}
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// SaveConfig writes configuration to ~/.storm/config.json
func SaveConfig(cfg *Config) error {
	if err := paths.EnsureStormDir(); err != nil {
		return err
	}

	configPath, err := paths.ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// fileConfig mirrors Config for decoding. SeedWelcome is a pointer because
// the default is true: a file that omits the key must not flip it.
type fileConfig struct {
	OpenRouterModel string `json:"openrouter_model"`
	RequestTimeout  int    `json:"request_timeout"`
	MaxChats        int    `json:"max_chats"`
	DefaultLanguage string `json:"default_language"`
	SeedWelcome     *bool  `json:"seed_welcome"`
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(configPath string) (*fileConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeCfg merges source config into destination config
func mergeCfg(dst *Config, src *fileConfig) {
	if src.OpenRouterModel != "" {
		dst.OpenRouterModel = src.OpenRouterModel
	}
	if src.RequestTimeout > 0 {
		dst.RequestTimeout = src.RequestTimeout
	}
	if src.MaxChats > 0 {
		dst.MaxChats = src.MaxChats
	}
	if src.DefaultLanguage != "" {
		dst.DefaultLanguage = src.DefaultLanguage
	}
	if src.SeedWelcome != nil {
		dst.SeedWelcome = *src.SeedWelcome
	}
}
