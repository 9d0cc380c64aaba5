package karate

import (
	"context"
	"fmt"
	"strings"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

// FallbackGenerator renders deterministic scenario templates with no external
// calls: one scenario per request issuing the HTTP call and asserting a 2xx
// status and a non-empty response. It is the structural safety net that keeps
// every conversion runnable.
type FallbackGenerator struct {
	// Environments feeds the generated karate-config.js; nil means the
	// built-in defaults.
	Environments map[string]map[string]string
}

// NewFallbackGenerator creates a fallback generator using the given
// environment definitions for karate-config.js.
func NewFallbackGenerator(envs map[string]map[string]string) *FallbackGenerator {
	return &FallbackGenerator{Environments: envs}
}

// Generate renders the complete bundle. Identical collections always produce
// identical bundles.
func (g *FallbackGenerator) Generate(_ context.Context, col *postman.Collection) (*Bundle, error) {
	reqs := postman.Flatten(col)
	paths := FeaturePaths(reqs)

	b := &Bundle{}
	addSharedArtifacts(b, col.Name, g.Environments, len(reqs))
	for i, fr := range reqs {
		b.Add(paths[i], FeatureTemplate(fr))
	}
	return b, nil
}

// FeatureTemplate renders the deterministic feature body for one request.
// Variable placeholders in URL, headers, and body pass through verbatim.
func FeatureTemplate(fr postman.FlattenedRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Feature: %s\n\n", featureTitle(fr))
	fmt.Fprintf(&sb, "Scenario: %s %s\n", fr.Request.Method, fr.Name)
	fmt.Fprintf(&sb, "  Given url '%s'\n", escapeSingleQuotes(fr.Request.URL))
	for _, h := range fr.Request.Headers {
		fmt.Fprintf(&sb, "  And header %s = '%s'\n", h.Key, escapeSingleQuotes(h.Value))
	}
	if fr.Request.Auth != nil {
		fmt.Fprintf(&sb, "  # auth scheme from the collection: %s\n", fr.Request.Auth.Type)
	}
	if body := strings.TrimSpace(fr.Request.Body); body != "" {
		fmt.Fprintf(&sb, "  And request\n    \"\"\"\n%s\n    \"\"\"\n", indent(body, "    "))
	}
	fmt.Fprintf(&sb, "  When method %s\n", fr.Request.Method)
	fmt.Fprintf(&sb, "  Then assert responseStatus >= 200 && responseStatus < 300\n")
	fmt.Fprintf(&sb, "  And assert response != null\n")
	return sb.String()
}

func featureTitle(fr postman.FlattenedRequest) string {
	if len(fr.Folders) == 0 {
		return fr.Name
	}
	return strings.Join(fr.Folders, " / ") + " / " + fr.Name
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
