package ml

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// StubConfig holds configuration for the stub model
type StubConfig struct {
	BaseConfig
	// QuotaExhausted makes every call fail with ErrQuotaExceeded, which
	// exercises the sample fallback without a real provider.
	QuotaExhausted bool `json:"quota_exhausted"`
}

// Load loads the stub configuration
func (c *StubConfig) Load(logger *zap.Logger) error {
	if err := c.LoadConfig("stub", c, logger); err != nil {
		return err
	}
	if v, err := strconv.ParseBool(os.Getenv("STUB_QUOTA_EXHAUSTED")); err == nil {
		c.QuotaExhausted = v
	}
	return nil
}

// StubModel is a deterministic, no-network model for local runs and tests.
// It answers with schema-valid JSON that claims no nutrition values.
type StubModel struct {
	config StubConfig
}

// StubModelFactory implements ModelFactory for the stub model
type StubModelFactory struct {
	config StubConfig
}

// NewStubModelFactory creates a new stub model factory
func NewStubModelFactory(config StubConfig) *StubModelFactory {
	return &StubModelFactory{config: config}
}

// CreateModel creates a new stub model instance
func (f *StubModelFactory) CreateModel() (Model, error) {
	return &StubModel{config: f.config}, nil
}

// Load is a no-op
func (m *StubModel) Load(ctx context.Context) error {
	return nil
}

// ProcessImage returns a fixed analysis keyed by a hash of the input
func (m *StubModel) ProcessImage(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.config.QuotaExhausted {
		return "", fmt.Errorf("stub model: %w", ErrQuotaExceeded)
	}

	sum := sha256.Sum256([]byte(req.Instruction + req.ImageBase64))
	short := hex.EncodeToString(sum[:8])

	out := map[string]any{
		"guard": map[string]any{
			"is_food":      true,
			"issues":       []string{},
			"user_message": "",
		},
		"summary": fmt.Sprintf("Offline stub analysis (%s). No model was called.", short),
		"nutrition": map[string]any{
			"calories_kcal":   nil,
			"macros":          map[string]any{"carb_g": nil, "protein_g": nil, "fat_g": nil},
			"macro_split_pct": map[string]any{"carb": "", "protein": "", "fat": ""},
			"micros":          []any{},
		},
		"ingredients":         []string{},
		"portion_assumptions": []string{},
		"uncertainties":       []string{"offline stub model; nothing was estimated"},
		"confidence":          0,
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Name identifies the backend
func (m *StubModel) Name() string {
	return "stub"
}

// Close is a no-op
func (m *StubModel) Close() error {
	return nil
}
