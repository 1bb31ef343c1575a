package analysis

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/franckalain/nutritionguard/internal/intake"
	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/metrics"
	"github.com/franckalain/nutritionguard/internal/ml"
	"github.com/franckalain/nutritionguard/internal/models"
	"github.com/franckalain/nutritionguard/internal/normalize"
	"go.uber.org/zap"
)

// Source tells where a returned record came from
type Source string

const (
	SourceModel       Source = "model"
	SourceRejected    Source = "rejected"
	SourceUnparseable Source = "unparseable"
	SourceSample      Source = "sample"
)

// Outcome is the result of one analysis request
type Outcome struct {
	Record models.AnalysisRecord
	Source Source
	Raw    string // model text as received; empty when the model was not consulted
}

// Options configures a Service
type Options struct {
	MinImageBytes int64
	MaxImageBytes int64
	Catalog       locale.Catalog
}

// Service runs the intake, model call and normalization pipeline
type Service struct {
	model        ml.Model
	validator    *intake.Validator
	normalizer   *normalize.Normalizer
	catalog      locale.Catalog
	systemPrompt string
	logger       *zap.Logger
	pick         func(n int) int
}

// NewService creates a Service. A zero Catalog means English.
func NewService(model ml.Model, opts Options, logger *zap.Logger) *Service {
	catalog := opts.Catalog
	if catalog.Tag == "" {
		catalog = locale.Lookup(locale.DefaultTag)
	}
	return &Service{
		model:        model,
		validator:    intake.NewValidator(opts.MinImageBytes, opts.MaxImageBytes, catalog),
		normalizer:   normalize.New(catalog),
		catalog:      catalog,
		systemPrompt: SystemPrompt(catalog),
		logger:       logger,
		pick:         rand.Intn,
	}
}

// Catalog returns the language catalog the service answers in
func (s *Service) Catalog() locale.Catalog {
	return s.catalog
}

// ModelName identifies the configured backend
func (s *Service) ModelName() string {
	return s.model.Name()
}

// Analyze validates the payload, consults the model and normalizes its answer.
// Only transport failures other than quota exhaustion are returned as errors.
func (s *Service) Analyze(ctx context.Context, payload models.ImagePayload) (*Outcome, error) {
	if rej := s.validator.Check(payload.Image); rej != nil {
		s.logger.Info("Image rejected before analysis",
			zap.String("reason", string(rej.Reason)),
			zap.Int("length", len(payload.Image)),
		)
		metrics.RejectionsTotal.WithLabelValues(string(rej.Reason)).Inc()
		return s.finish(&Outcome{Record: rej.Record(s.catalog.Disclaimer), Source: SourceRejected}), nil
	}

	instruction := payload.Instruction
	if instruction == "" {
		instruction = s.catalog.DefaultPrompt
	}

	start := time.Now()
	raw, err := s.model.ProcessImage(ctx, ml.Request{
		ImageBase64:  payload.Image,
		Instruction:  instruction,
		SystemPrompt: s.systemPrompt,
	})
	elapsed := time.Since(start)

	if err != nil {
		if ml.IsQuotaError(err) {
			metrics.ModelCallDurationSeconds.WithLabelValues("quota").Observe(elapsed.Seconds())
			s.logger.Warn("Model quota exhausted, serving sample record",
				zap.String("model", s.model.Name()),
				zap.Error(err),
			)
			return s.finish(&Outcome{Record: s.sample(), Source: SourceSample}), nil
		}
		metrics.ModelCallDurationSeconds.WithLabelValues("error").Observe(elapsed.Seconds())
		s.logger.Error("Model call failed",
			zap.String("model", s.model.Name()),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return nil, fmt.Errorf("analyze image: %w", err)
	}
	metrics.ModelCallDurationSeconds.WithLabelValues("ok").Observe(elapsed.Seconds())

	res := s.normalizer.Normalize(raw)
	metrics.ParseTotal.WithLabelValues(string(res.Branch)).Inc()

	s.logger.Info("Model answered",
		zap.String("model", s.model.Name()),
		zap.Duration("latency", elapsed),
		zap.String("branch", string(res.Branch)),
		zap.Bool("is_food", res.Record.Guard.IsFood),
	)
	s.logger.Debug("Raw model output", zap.String("raw", raw))

	source := SourceModel
	if res.Branch == normalize.BranchUnparseable {
		source = SourceUnparseable
	}
	return s.finish(&Outcome{Record: res.Record, Source: source, Raw: raw}), nil
}

// Display projects an outcome's record for presentation
func (s *Service) Display(o *Outcome) normalize.Display {
	return normalize.Project(o.Record, s.catalog)
}

func (s *Service) finish(o *Outcome) *Outcome {
	metrics.AnalysesTotal.WithLabelValues(string(o.Source)).Inc()
	return o
}

func (s *Service) sample() models.AnalysisRecord {
	set := Samples(s.catalog)
	return set[s.pick(len(set))]
}
