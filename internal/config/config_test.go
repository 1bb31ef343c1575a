package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "STATIC_DIR", "DEBUG", "MAX_BODY_BYTES", "READ_TIMEOUT_SECONDS", "WRITE_TIMEOUT_SECONDS",
	"LOCALE", "MIN_IMAGE_BYTES", "MAX_IMAGE_BYTES", "ML_TYPE", "ML_CONFIG", "OPENAI_API_KEY",
	"NUTRITION_CONFIG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "./static", cfg.Server.StaticDir)
	assert.False(t, cfg.Server.Debug)
	assert.EqualValues(t, 10*1024*1024, cfg.Server.MaxBodyBytes)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 180*time.Second, cfg.WriteTimeout())
	assert.Equal(t, "en", cfg.Analysis.Locale)
	assert.Equal(t, "stub", cfg.ML.Type)
}

func TestLoadConfigPicksOpenAIWhenKeyPresent(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.ML.Type)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{
		"server": {"port": "8081", "debug": true, "max_body_bytes": 2048},
		"analysis": {"locale": "zh-TW", "min_image_bytes": 512},
		"ml": {"type": "google", "config_path": "config/google.json"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.EqualValues(t, 2048, cfg.Server.MaxBodyBytes)
	assert.Equal(t, "zh-TW", cfg.Analysis.Locale)
	assert.EqualValues(t, 512, cfg.Analysis.MinImageBytes)
	assert.Equal(t, "google", cfg.ML.Type)
	assert.Equal(t, "config/google.json", cfg.ML.ConfigPath)
}

func TestLoadConfigEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"server": {"port": "8081"}, "ml": {"type": "google"}}`)
	t.Setenv("PORT", "9090")
	t.Setenv("ML_TYPE", "stub")
	t.Setenv("DEBUG", "true")
	t.Setenv("MAX_IMAGE_BYTES", "4096")
	t.Setenv("MIN_IMAGE_BYTES", "not-a-number")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "stub", cfg.ML.Type)
	assert.True(t, cfg.Server.Debug)
	assert.EqualValues(t, 4096, cfg.Analysis.MaxImageBytes)
	assert.Zero(t, cfg.Analysis.MinImageBytes)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"server":`},
		{"unknown ml type", `{"ml": {"type": "local"}}`},
		{"unknown locale", `{"analysis": {"locale": "fr"}}`},
		{"inverted bounds", `{"analysis": {"min_image_bytes": 4096, "max_image_bytes": 1024}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("NUTRITION_CONFIG", "/etc/nutrition/config.json")
	assert.Equal(t, "/etc/nutrition/config.json", GetConfigPath())
}
