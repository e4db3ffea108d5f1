package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-3-flash-preview", cfg.Model)
	assert.Empty(t, cfg.APIKey)
	assert.False(t, cfg.Debug)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("GEMINI_API_KEY sets key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "test-key", cfg.APIKey)
	})

	t.Run("empty env does not clobber file value", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		cfg := Config{APIKey: "from-file"}
		cfg.applyEnvOverrides()

		assert.Equal(t, "from-file", cfg.APIKey)
	})

	t.Run("EDUGLOBAL_MODEL overrides model", func(t *testing.T) {
		t.Setenv("EDUGLOBAL_MODEL", "gemini-3-pro-preview")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gemini-3-pro-preview", cfg.Model)
	})

	t.Run("EDUGLOBAL_DEBUG accepts 1 and true", func(t *testing.T) {
		t.Setenv("EDUGLOBAL_DEBUG", "1")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Debug)

		t.Setenv("EDUGLOBAL_DEBUG", "true")
		cfg = DefaultConfig()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Debug)

		t.Setenv("EDUGLOBAL_DEBUG", "no")
		cfg = DefaultConfig()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Debug)
	})

	t.Run("EDUGLOBAL_DATA_DIR overrides data dir", func(t *testing.T) {
		t.Setenv("EDUGLOBAL_DATA_DIR", "/tmp/edusessions")

		cfg := Config{DataDir: "/var/old"}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/edusessions", cfg.DataDir)
	})
}
