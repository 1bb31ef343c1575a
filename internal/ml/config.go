package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// BaseConfig provides common configuration functionality
type BaseConfig struct {
	ConfigPath string
}

// LoadConfig loads configuration from a file, falling back to environment variables.
// An explicit ConfigPath must exist; the default config/<prefix>.json is optional.
func (c *BaseConfig) LoadConfig(envPrefix string, config any, logger *zap.Logger) error {
	if c.ConfigPath != "" {
		if err := readJSON(c.ConfigPath, config); err != nil {
			return err
		}
		logger.Info("Loaded model configuration", zap.String("path", c.ConfigPath))
		return nil
	}

	defaultPath := filepath.Join("config", fmt.Sprintf("%s.json", envPrefix))
	err := readJSON(defaultPath, config)
	switch {
	case err == nil:
		logger.Info("Loaded model configuration from default file", zap.String("path", defaultPath))
		return nil
	case errors.Is(err, os.ErrNotExist):
		logger.Info("Using environment variables for model configuration", zap.String("model", envPrefix))
		return nil
	default:
		return err
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func envOr(current, key, fallback string) string {
	if current != "" {
		return current
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
