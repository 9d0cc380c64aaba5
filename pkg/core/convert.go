package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/karate"
	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

// Converter runs the parse -> generate -> assemble pipeline for one
// collection. It is stateless across calls; concurrent conversions share
// nothing but the configuration snapshot and the model client.
type Converter struct {
	cfg   Config
	model karate.TextModel
	envs  map[string]map[string]string
	log   *zap.Logger
}

// NewConverter creates a converter. model may be nil, which pins every
// conversion to the fallback generator.
func NewConverter(cfg Config, model karate.TextModel, envs map[string]map[string]string, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{cfg: cfg, model: model, envs: envs, log: log}
}

// Result is a successful conversion: the archive bytes, a download name, and
// any non-fatal warnings (skipped nodes, degraded scenarios).
type Result struct {
	Archive  []byte
	Filename string
	Warnings []string
}

// Convert turns raw collection bytes into a Karate suite archive. Parser
// failures surface immediately and are never retried; generation-service
// failures degrade to the fallback generator instead of failing the call.
func (cv *Converter) Convert(ctx context.Context, raw []byte) (*Result, error) {
	if cv.cfg.ConvertTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cv.cfg.ConvertTimeout)
		defer cancel()
	}

	col, err := postman.Parse(raw)
	if err != nil {
		return nil, translateParseError(err)
	}
	warnings := append([]string{}, col.Warnings...)

	fallback := karate.NewFallbackGenerator(cv.envs)
	bundle, genWarnings, err := cv.generate(ctx, col, fallback)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, genWarnings...)

	archive, err := Assemble(bundle)
	if err != nil {
		return nil, err
	}

	cv.log.Info("conversion finished",
		zap.String("collection", col.Name),
		zap.Int("artifacts", bundle.Len()),
		zap.Int("warnings", len(warnings)))

	return &Result{
		Archive:  archive,
		Filename: archiveFilename(time.Now()),
		Warnings: warnings,
	}, nil
}

// generate picks the strategy and applies the whole-suite degradation policy:
// LLM when a model is configured, fallback otherwise or after the service
// failed persistently.
func (cv *Converter) generate(ctx context.Context, col *postman.Collection, fallback *karate.FallbackGenerator) (*karate.Bundle, []string, error) {
	if cv.model == nil {
		bundle, err := fallback.Generate(ctx, col)
		if err != nil {
			return nil, nil, &ConversionError{Kind: KindInternal, Message: "fallback generation failed", Err: err}
		}
		return bundle, bundle.Warnings, nil
	}

	llmGen := karate.NewLLMGenerator(cv.model, fallback)
	bundle, err := llmGen.Generate(ctx, col)
	if err == nil {
		return bundle, bundle.Warnings, nil
	}

	var se *karate.ServiceError
	if !errors.As(err, &se) {
		return nil, nil, &ConversionError{Kind: KindInternal, Message: "generation failed", Err: err}
	}

	cv.log.Warn("generation service failed, degrading whole suite to fallback templates", zap.Error(se))
	bundle, fbErr := fallback.Generate(ctx, col)
	if fbErr != nil {
		return nil, nil, &ConversionError{Kind: KindInternal, Message: "fallback generation failed", Err: fbErr}
	}
	warnings := append(bundle.Warnings, fmt.Sprintf("generation degraded: %v; fallback templates used for the whole suite", se))
	return bundle, warnings, nil
}

func translateParseError(err error) error {
	if errors.Is(err, postman.ErrMalformedInput) {
		return &ConversionError{Kind: KindMalformedInput, Message: "invalid JSON format", Err: err}
	}
	var se *postman.SchemaError
	if errors.As(err, &se) {
		return &ConversionError{Kind: KindSchema, Message: "invalid Postman collection format", Err: err}
	}
	return &ConversionError{Kind: KindInternal, Message: "failed to parse collection", Err: err}
}

func archiveFilename(now time.Time) string {
	return fmt.Sprintf("karate-test-suite-%s.zip", now.Format("20060102-150405"))
}
