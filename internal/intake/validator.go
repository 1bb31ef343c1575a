package intake

import (
	"regexp"

	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/models"
)

const (
	MinLength       = 50
	DefaultMinBytes = 1024
	DefaultMaxBytes = 5 * 1024 * 1024
)

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Reason identifies which intake check failed
type Reason string

const (
	ReasonMissing  Reason = "missing"
	ReasonEncoding Reason = "encoding"
	ReasonTooLarge Reason = "too_large"
	ReasonTooSmall Reason = "too_small"
)

// Rejection describes why a payload must not be sent to the model
type Rejection struct {
	Reason Reason
	Notice locale.Notice
}

// Validator checks image payloads before any model call is made
type Validator struct {
	MinBytes int64
	MaxBytes int64
	Catalog  locale.Catalog
}

// NewValidator creates a validator. Non-positive bounds fall back to 1KB and 5MB.
func NewValidator(minBytes, maxBytes int64, catalog locale.Catalog) *Validator {
	if minBytes <= 0 {
		minBytes = DefaultMinBytes
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{MinBytes: minBytes, MaxBytes: maxBytes, Catalog: catalog}
}

// Check returns nil when the image may be analyzed, otherwise the first failed check.
func (v *Validator) Check(image string) *Rejection {
	if len(image) < MinLength {
		return &Rejection{Reason: ReasonMissing, Notice: v.Catalog.NoImage}
	}

	if !base64Pattern.MatchString(image) {
		return &Rejection{Reason: ReasonEncoding, Notice: v.Catalog.InvalidEncoding}
	}

	size := EstimateSize(image)
	if size > float64(v.MaxBytes) {
		return &Rejection{Reason: ReasonTooLarge, Notice: v.Catalog.TooLarge}
	}
	if size < float64(v.MinBytes) {
		return &Rejection{Reason: ReasonTooSmall, Notice: v.Catalog.TooSmall}
	}

	return nil
}

// Record renders the rejection as a complete, non-food analysis record.
func (r *Rejection) Record(disclaimer string) models.AnalysisRecord {
	return models.NotAnalyzable(r.Notice.Issue, r.Notice.Message, disclaimer)
}

// EstimateSize approximates the decoded size of a base64 string in bytes.
func EstimateSize(image string) float64 {
	return float64(len(image)) * 3 / 4
}
