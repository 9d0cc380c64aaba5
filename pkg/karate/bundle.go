// Package karate turns a parsed collection into the artifact set of a Karate
// test suite. Two generators implement the same capability: LLMGenerator asks
// a generation service to author scenarios, FallbackGenerator renders
// deterministic templates with no external calls.
package karate

import (
	"context"
	"sort"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

// Fixed artifact paths shared by every conversion.
const (
	ConfigPath        = "karate-config.js"
	RunnerPath        = "TestRunner.java"
	CommonFeaturePath = "features/common.feature"
	ReadmePath        = "README.md"
)

// SharedArtifactCount is the number of artifacts emitted once per conversion,
// independent of request count.
const SharedArtifactCount = 4

// Artifact is one generated file, addressed by its archive-relative path.
type Artifact struct {
	Path    string
	Content []byte
}

// Bundle is the complete artifact set for one conversion plus any
// generation warnings. Path uniqueness is enforced at assembly time.
type Bundle struct {
	artifacts []Artifact
	// Warnings records per-request degradations and similar non-fatal events.
	Warnings []string
}

// Add appends an artifact to the bundle.
func (b *Bundle) Add(path, content string) {
	b.artifacts = append(b.artifacts, Artifact{Path: path, Content: []byte(content)})
}

// Artifacts returns the bundle's artifacts sorted by path.
func (b *Bundle) Artifacts() []Artifact {
	out := make([]Artifact, len(b.artifacts))
	copy(out, b.artifacts)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of artifacts in the bundle.
func (b *Bundle) Len() int {
	return len(b.artifacts)
}

// Generator produces the full artifact bundle for a parsed collection.
type Generator interface {
	Generate(ctx context.Context, col *postman.Collection) (*Bundle, error)
}
