package ml

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const defaultGoogleModel = "gemini-1.5-flash"

// GoogleConfig holds configuration for the Google model
type GoogleConfig struct {
	BaseConfig
	ProjectID       string `json:"project_id"`
	Location        string `json:"location"`
	CredentialsFile string `json:"credentials_file"`
	Model           string `json:"model"`
}

// Load loads the Google configuration
func (c *GoogleConfig) Load(logger *zap.Logger) error {
	if err := c.LoadConfig("google", c, logger); err != nil {
		return err
	}

	// Fall back to environment variables if not set
	c.ProjectID = envOr(c.ProjectID, "GOOGLE_PROJECT_ID", "")
	c.Location = envOr(c.Location, "GOOGLE_LOCATION", "us-central1")
	c.CredentialsFile = envOr(c.CredentialsFile, "GOOGLE_CREDENTIALS_FILE", "")
	c.Model = envOr(c.Model, "GOOGLE_MODEL", defaultGoogleModel)

	return nil
}

// GoogleModel implements the Model interface for Google's Vertex AI
type GoogleModel struct {
	config GoogleConfig
	client *genai.Client
}

// GoogleModelFactory implements ModelFactory for Google models
type GoogleModelFactory struct {
	config GoogleConfig
}

// NewGoogleModelFactory creates a new Google model factory
func NewGoogleModelFactory(config GoogleConfig) *GoogleModelFactory {
	return &GoogleModelFactory{config: config}
}

// CreateModel creates a new Google model instance
func (f *GoogleModelFactory) CreateModel() (Model, error) {
	return &GoogleModel{
		config: f.config,
	}, nil
}

// Load initializes the Vertex AI client
func (m *GoogleModel) Load(ctx context.Context) error {
	if m.config.ProjectID == "" {
		return errors.New("GOOGLE_PROJECT_ID is not set")
	}

	opts := []option.ClientOption{}
	if m.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(m.config.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, m.config.ProjectID, m.config.Location, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	m.client = client
	return nil
}

// ProcessImage processes an image using Google's Vertex AI
func (m *GoogleModel) ProcessImage(ctx context.Context, req Request) (string, error) {
	if m.client == nil {
		return "", fmt.Errorf("model not loaded")
	}

	// The system instruction lives on the GenerativeModel; one per call.
	model := m.client.GenerativeModel(m.config.Model)
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	parts, err := googleParts(req)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to call ai: %w", err)
	}
	return responseText(resp)
}

// googleParts builds the prompt parts: the instruction text, then the image blob.
func googleParts(req Request) ([]genai.Part, error) {
	var parts []genai.Part
	if req.Instruction != "" {
		parts = append(parts, genai.Text(req.Instruction))
	}
	if req.ImageBase64 != "" {
		data, mime, err := decodeImage(req.ImageBase64)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.Blob{MIMEType: mime, Data: data})
	}
	return parts, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}

// Name identifies the backend and model
func (m *GoogleModel) Name() string {
	return "google/" + m.config.Model
}

// Close closes the Vertex AI client
func (m *GoogleModel) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}
