package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/model"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("invalid request")

// maxStrengthInput bounds the size of passwords accepted for rating.
const maxStrengthInput = 1024

// Limits is the length window callers may request.
type Limits struct {
	Default int
	Min     int
	Max     int
}

// DefaultLimits mirrors the 8-32 slider of the original generator UI.
func DefaultLimits() Limits {
	return Limits{Default: crypto.DefaultLength, Min: 8, Max: 32}
}

// GeneratorService handles password generation and rating for API consumers.
type GeneratorService struct {
	generator *crypto.Generator
	limits    Limits
	metrics   metrics.Recorder
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(generator *crypto.Generator, limits Limits, rec metrics.Recorder) *GeneratorService {
	if generator == nil {
		generator = crypto.NewGenerator(nil)
	}
	if rec == nil {
		rec = metrics.NoOpRecorder{}
	}
	return &GeneratorService{
		generator: generator,
		limits:    limits,
		metrics:   rec,
	}
}

// Generate produces a password based on the given request and rates it.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	start := time.Now()

	if req.Length == 0 {
		req.Length = s.limits.Default
	}

	err := validation.ValidateStruct(&req,
		validation.Field(&req.Length, validation.Min(s.limits.Min), validation.Max(s.limits.Max)),
	)
	if err != nil {
		s.record(ctx, "generate", start, err)
		return model.GenerateResponse{}, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	opts := crypto.GeneratorOptions{
		Length:           req.Length,
		Lowercase:        boolOrDefault(req.Lowercase, true),
		Uppercase:        boolOrDefault(req.Uppercase, true),
		Numbers:          boolOrDefault(req.Numbers, true),
		Symbols:          boolOrDefault(req.Symbols, true),
		RequireEachClass: req.RequireEachClass,
	}

	password, err := s.generator.Generate(opts)
	if err != nil {
		s.record(ctx, "generate", start, err)
		return model.GenerateResponse{}, err
	}

	strength := crypto.Classify(password)
	s.record(ctx, "generate", start, nil)
	s.metrics.RecordStrength(ctx, "generate", strength.String())

	return model.GenerateResponse{
		Password: password,
		Length:   crypto.CharCount(password),
		Strength: strength,
		Message:  model.StrengthMessage(strength),
	}, nil
}

// Classify rates a caller-supplied password.
func (s *GeneratorService) Classify(ctx context.Context, req model.StrengthRequest) (model.StrengthResponse, error) {
	start := time.Now()

	err := validation.ValidateStruct(&req,
		validation.Field(&req.Password, validation.Length(0, maxStrengthInput)),
	)
	if err != nil {
		s.record(ctx, "classify", start, err)
		return model.StrengthResponse{}, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	strength := crypto.Classify(req.Password)
	s.record(ctx, "classify", start, nil)
	s.metrics.RecordStrength(ctx, "classify", strength.String())

	return model.StrengthResponse{
		Strength:     strength,
		VarietyScore: crypto.VarietyScore(req.Password),
		Length:       crypto.CharCount(req.Password),
		Message:      model.StrengthMessage(strength),
	}, nil
}

func (s *GeneratorService) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, operation, status)
	s.metrics.RecordDuration(ctx, operation, time.Since(start), status)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
