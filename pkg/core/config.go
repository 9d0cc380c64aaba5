// Package core wires the conversion pipeline: parse the collection, pick a
// generation strategy, assemble the archive, and translate failures into the
// typed error taxonomy.
package core

import "time"

// Config is an immutable snapshot of process configuration, captured once at
// startup and passed explicitly into the converter and server so conversions
// stay testable without environment mutation.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// GeminiAPIKey gates LLM mode; empty means fallback-only. Never fatal.
	GeminiAPIKey string
	// GeminiModel is the generation model identifier.
	GeminiModel string
	// EnvDir holds YAML environment files for karate-config.js.
	EnvDir string
	// MaxUploadBytes caps the request body accepted by the server.
	MaxUploadBytes int
	// ConvertTimeout bounds one whole conversion, LLM calls included.
	ConvertTimeout time.Duration
	// Debug switches the logger to development output.
	Debug bool
}

// LLMEnabled reports whether a generation-service credential is configured.
func (c Config) LLMEnabled() bool {
	return c.GeminiAPIKey != ""
}
