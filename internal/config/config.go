// Package config loads user configuration for the EduGlobal CLI.
// Configuration lives in a single JSON file; environment variables take
// precedence over the file, and a .env file in the working directory is
// honoured for local development.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds user preferences.
type Config struct {
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url"`
	DataDir string `json:"data_dir"` // Where the session slot lives
	Debug   bool   `json:"debug"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Model: "gemini-3-flash-preview",
	}
}

// ConfigDir returns the directory where config is stored.
func ConfigDir() (string, error) {
	// Prefer a project-local .eduglobal directory if present.
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".eduglobal")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".eduglobal"), nil
}

// ConfigFile returns the full path to the config file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk and applies env overrides.
// A missing or unreadable file yields the defaults, never an error state
// the caller has to branch on.
func Load() (Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path, err := ConfigFile()
	if err != nil {
		cfg.applyEnvOverrides()
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			cfg = DefaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigFile()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides applies environment variables on top of file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("EDUGLOBAL_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("EDUGLOBAL_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("EDUGLOBAL_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("EDUGLOBAL_DEBUG"); v == "1" || v == "true" {
		c.Debug = true
	}
}
