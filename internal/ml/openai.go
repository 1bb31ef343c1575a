package ml

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultOpenAIModel     = "gpt-5-nano"
	defaultMaxOutputTokens = 10000
)

// SupportedOpenAIModels lists the models known to accept image input
var SupportedOpenAIModels = []string{
	"gpt-5",
	"gpt-5-mini",
	"gpt-5-nano",
	"gpt-4.1-2025-04-14",
}

// OpenAIConfig holds configuration for the OpenAI model
type OpenAIConfig struct {
	BaseConfig
	APIKey              string `json:"api_key"`
	BaseURL             string `json:"base_url"`
	Model               string `json:"model"`
	MaxCompletionTokens int    `json:"max_completion_tokens"`
}

// Load loads the OpenAI configuration
func (c *OpenAIConfig) Load(logger *zap.Logger) error {
	if err := c.LoadConfig("openai", c, logger); err != nil {
		return err
	}

	// Fall back to environment variables if not set
	c.APIKey = envOr(c.APIKey, "OPENAI_API_KEY", "")
	c.BaseURL = envOr(c.BaseURL, "OPENAI_BASE_URL", "")
	c.Model = envOr(c.Model, "OPENAI_MODEL", defaultOpenAIModel)
	if c.MaxCompletionTokens <= 0 {
		c.MaxCompletionTokens = defaultMaxOutputTokens
	}

	return nil
}

// OpenAIModel implements the Model interface for OpenAI chat completions
type OpenAIModel struct {
	config OpenAIConfig
	client *openai.Client
	logger *zap.Logger
}

// OpenAIModelFactory implements ModelFactory for OpenAI models
type OpenAIModelFactory struct {
	config OpenAIConfig
	logger *zap.Logger
}

// NewOpenAIModelFactory creates a new OpenAI model factory
func NewOpenAIModelFactory(config OpenAIConfig, logger *zap.Logger) *OpenAIModelFactory {
	return &OpenAIModelFactory{config: config, logger: logger}
}

// CreateModel creates a new OpenAI model instance
func (f *OpenAIModelFactory) CreateModel() (Model, error) {
	return &OpenAIModel{
		config: f.config,
		logger: f.logger,
	}, nil
}

// Load initializes the OpenAI client
func (m *OpenAIModel) Load(ctx context.Context) error {
	if m.config.APIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}

	clientConfig := openai.DefaultConfig(m.config.APIKey)
	if m.config.BaseURL != "" {
		clientConfig.BaseURL = m.config.BaseURL
	}
	m.client = openai.NewClientWithConfig(clientConfig)

	if !slices.Contains(SupportedOpenAIModels, m.config.Model) {
		m.logger.Warn("Model may not support image input",
			zap.String("model", m.config.Model),
			zap.Strings("recommended", SupportedOpenAIModels[:3]),
		)
	}
	return nil
}

// ProcessImage sends the image to the chat completions endpoint
func (m *OpenAIModel) ProcessImage(ctx context.Context, req Request) (string, error) {
	if m.client == nil {
		return "", fmt.Errorf("model not loaded")
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.ImageBase64 == "" {
		user.Content = req.Instruction
	} else {
		user.MultiContent = []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: req.Instruction,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: dataURL(req.ImageBase64),
				},
			},
		}
	}
	messages = append(messages, user)

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               m.config.Model,
		Messages:            messages,
		MaxCompletionTokens: m.config.MaxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	m.logger.Debug("OpenAI call finished",
		zap.String("model", m.config.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
	)
	return resp.Choices[0].Message.Content, nil
}

// Name identifies the backend and model
func (m *OpenAIModel) Name() string {
	return "openai/" + m.config.Model
}

// Close is a no-op; the HTTP client holds no resources that need releasing
func (m *OpenAIModel) Close() error {
	return nil
}
