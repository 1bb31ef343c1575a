package ml

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Request is a single vision call: a fixed system directive, the user
// instruction and an optional base64 encoded image.
type Request struct {
	ImageBase64  string
	Instruction  string
	SystemPrompt string
}

// Model represents a vision language model that describes images as text
type Model interface {
	// Load initializes the model with its configuration
	Load(ctx context.Context) error
	// ProcessImage sends the request and returns the model's raw text answer
	ProcessImage(ctx context.Context, req Request) (string, error)
	// Name identifies the backend and model for logs and responses
	Name() string
	// Close releases any client resources
	Close() error
}

// ModelFactory creates a new model instance based on configuration
type ModelFactory interface {
	// CreateModel creates a new model instance
	CreateModel() (Model, error)
}

// NewModel creates a new model instance based on the model type.
// configPath optionally points at a backend specific JSON file.
func NewModel(modelType, configPath string, logger *zap.Logger) (Model, error) {
	var factory ModelFactory

	switch modelType {
	case "openai":
		config := OpenAIConfig{
			BaseConfig: BaseConfig{ConfigPath: configPath},
		}
		if err := config.Load(logger); err != nil {
			return nil, fmt.Errorf("failed to load OpenAI config: %w", err)
		}
		factory = NewOpenAIModelFactory(config, logger)
	case "google":
		config := GoogleConfig{
			BaseConfig: BaseConfig{ConfigPath: configPath},
		}
		if err := config.Load(logger); err != nil {
			return nil, fmt.Errorf("failed to load Google config: %w", err)
		}
		factory = NewGoogleModelFactory(config)
	case "stub":
		config := StubConfig{
			BaseConfig: BaseConfig{ConfigPath: configPath},
		}
		if err := config.Load(logger); err != nil {
			return nil, fmt.Errorf("failed to load stub config: %w", err)
		}
		factory = NewStubModelFactory(config)
	default:
		return nil, fmt.Errorf("unsupported model type: %s", modelType)
	}
	return factory.CreateModel()
}
