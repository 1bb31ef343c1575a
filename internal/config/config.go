package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/franckalain/nutritionguard/internal/locale"
)

const (
	defaultPort         = "3000"
	defaultStaticDir    = "./static"
	defaultMaxBodyBytes = 10 * 1024 * 1024
	defaultReadTimeout  = 30
	defaultWriteTimeout = 180
)

// Config holds all application configuration
type Config struct {
	Server struct {
		Port                string `json:"port"`
		StaticDir           string `json:"static_dir"`
		Debug               bool   `json:"debug"`
		MaxBodyBytes        int64  `json:"max_body_bytes"`
		ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
	} `json:"server"`

	Analysis struct {
		Locale        string `json:"locale"`
		MinImageBytes int64  `json:"min_image_bytes"`
		MaxImageBytes int64  `json:"max_image_bytes"`
	} `json:"analysis"`

	ML struct {
		Type       string `json:"type"` // "openai", "google" or "stub"
		ConfigPath string `json:"config_path"`
	} `json:"ml"`
}

// LoadConfig loads configuration from a JSON file and applies environment overrides.
// A missing file is not an error; defaults and the environment are used instead.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults and environment only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.applyEnv()

	// Handle missing values
	if config.Server.Port == "" {
		config.Server.Port = defaultPort
	}
	if config.Server.StaticDir == "" {
		config.Server.StaticDir = defaultStaticDir
	}
	if config.Server.MaxBodyBytes <= 0 {
		config.Server.MaxBodyBytes = defaultMaxBodyBytes
	}
	if config.Server.ReadTimeoutSeconds <= 0 {
		config.Server.ReadTimeoutSeconds = defaultReadTimeout
	}
	if config.Server.WriteTimeoutSeconds <= 0 {
		config.Server.WriteTimeoutSeconds = defaultWriteTimeout
	}
	if config.Analysis.Locale == "" {
		config.Analysis.Locale = locale.DefaultTag
	}
	if config.ML.Type == "" {
		config.ML.Type = "stub"
		if os.Getenv("OPENAI_API_KEY") != "" {
			config.ML.Type = "openai"
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.StaticDir = getEnv("STATIC_DIR", c.Server.StaticDir)
	c.Server.Debug = getEnvAsBool("DEBUG", c.Server.Debug)
	c.Server.MaxBodyBytes = getEnvAsInt64("MAX_BODY_BYTES", c.Server.MaxBodyBytes)
	c.Server.ReadTimeoutSeconds = getEnvAsInt("READ_TIMEOUT_SECONDS", c.Server.ReadTimeoutSeconds)
	c.Server.WriteTimeoutSeconds = getEnvAsInt("WRITE_TIMEOUT_SECONDS", c.Server.WriteTimeoutSeconds)
	c.Analysis.Locale = getEnv("LOCALE", c.Analysis.Locale)
	c.Analysis.MinImageBytes = getEnvAsInt64("MIN_IMAGE_BYTES", c.Analysis.MinImageBytes)
	c.Analysis.MaxImageBytes = getEnvAsInt64("MAX_IMAGE_BYTES", c.Analysis.MaxImageBytes)
	c.ML.Type = getEnv("ML_TYPE", c.ML.Type)
	c.ML.ConfigPath = getEnv("ML_CONFIG", c.ML.ConfigPath)
}

func (c *Config) validate() error {
	switch c.ML.Type {
	case "openai", "google", "stub":
	default:
		return fmt.Errorf("unsupported ml type: %s", c.ML.Type)
	}
	if !locale.Supported(c.Analysis.Locale) {
		return fmt.Errorf("unsupported locale: %s", c.Analysis.Locale)
	}
	if c.Analysis.MinImageBytes > 0 && c.Analysis.MaxImageBytes > 0 &&
		c.Analysis.MinImageBytes > c.Analysis.MaxImageBytes {
		return fmt.Errorf("min_image_bytes (%d) exceeds max_image_bytes (%d)",
			c.Analysis.MinImageBytes, c.Analysis.MaxImageBytes)
	}
	return nil
}

// ReadTimeout is the HTTP server read timeout
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout is the HTTP server write timeout; it bounds a whole model call
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() string {
	// First try environment variable
	if path := os.Getenv("NUTRITION_CONFIG"); path != "" {
		return path
	}

	// Then try config directory
	configDir := "config"
	if _, err := os.Stat(configDir); err == nil {
		return filepath.Join(configDir, "config.json")
	}

	// Finally, try current directory
	return "config.json"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
