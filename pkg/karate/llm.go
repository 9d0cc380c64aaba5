package karate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

// TextModel is the minimal generation-service surface the generator needs:
// prompt in, free text out, transient failures as errors.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ServiceError reports that the generation service kept failing after the
// internal retry. Callers degrade the whole conversion to the fallback
// generator instead of surfacing it.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service unavailable: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// LLMGenerator authors one scenario per request through a text model.
// Responses that cannot be parsed as feature files are retried once with a
// stricter prompt and then degrade to the fallback template for that single
// request. Transport failures are retried once with backoff; a persistent
// failure aborts with a *ServiceError.
//
// Calls run sequentially under a rate limiter, so responses are matched to
// their originating request by position, never by arrival order.
type LLMGenerator struct {
	model    TextModel
	fallback *FallbackGenerator
	limiter  *rate.Limiter
	backoff  time.Duration
}

// NewLLMGenerator creates a generator that delegates scenario authoring to
// model and borrows shared artifacts and per-request degradation templates
// from fallback.
func NewLLMGenerator(model TextModel, fallback *FallbackGenerator) *LLMGenerator {
	return &LLMGenerator{
		model:    model,
		fallback: fallback,
		limiter:  rate.NewLimiter(rate.Every(200*time.Millisecond), 2),
		backoff:  500 * time.Millisecond,
	}
}

// Generate produces the bundle for col. Per-request degradations are recorded
// in the bundle's warnings; only a persistently failing service returns an
// error.
func (g *LLMGenerator) Generate(ctx context.Context, col *postman.Collection) (*Bundle, error) {
	reqs := postman.Flatten(col)
	paths := FeaturePaths(reqs)

	b := &Bundle{}
	// Shared artifacts stay template-rendered even in LLM mode so the suite
	// skeleton never depends on model output.
	addSharedArtifacts(b, col.Name, g.fallback.Environments, len(reqs))

	for i, fr := range reqs {
		body, err := g.generateScenario(ctx, col.Name, fr)
		if err != nil {
			return nil, err
		}
		if body == "" {
			body = FeatureTemplate(fr)
			b.Warnings = append(b.Warnings,
				fmt.Sprintf("scenario %q: model output was not a valid feature file, fallback template used", scenarioLabel(fr)))
		}
		b.Add(paths[i], body)
	}
	return b, nil
}

// generateScenario returns the feature body for one request, or "" when the
// model answered but never produced parseable feature syntax.
func (g *LLMGenerator) generateScenario(ctx context.Context, collectionName string, fr postman.FlattenedRequest) (string, error) {
	text, err := g.call(ctx, scenarioPrompt(collectionName, fr))
	if err != nil {
		return "", err
	}
	if body, ok := parseFeature(text); ok {
		return body, nil
	}

	// One stricter retry before degrading this request.
	text, err = g.call(ctx, strictScenarioPrompt(collectionName, fr))
	if err != nil {
		return "", err
	}
	if body, ok := parseFeature(text); ok {
		return body, nil
	}
	return "", nil
}

// call invokes the model once, retrying a single time with backoff on
// transport failure.
func (g *LLMGenerator) call(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", &ServiceError{Err: err}
	}

	text, err := g.model.GenerateText(ctx, prompt)
	if err == nil {
		return text, nil
	}

	select {
	case <-ctx.Done():
		return "", &ServiceError{Err: ctx.Err()}
	case <-time.After(g.backoff):
	}

	text, retryErr := g.model.GenerateText(ctx, prompt)
	if retryErr != nil {
		return "", &ServiceError{Err: retryErr}
	}
	return text, nil
}

// parseFeature extracts a feature body from a model response, tolerating
// markdown fences. A body is valid when it carries both required section
// markers.
func parseFeature(text string) (string, bool) {
	body := stripFences(strings.TrimSpace(text))

	// Drop any preamble before the Feature: line.
	if idx := strings.Index(body, "Feature:"); idx > 0 {
		body = body[idx:]
	}

	if !strings.HasPrefix(body, "Feature:") || !strings.Contains(body, "Scenario") {
		return "", false
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return body, true
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Skip a language tag such as ```gherkin.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func scenarioLabel(fr postman.FlattenedRequest) string {
	if len(fr.Folders) == 0 {
		return fr.Name
	}
	return strings.Join(fr.Folders, "/") + "/" + fr.Name
}
