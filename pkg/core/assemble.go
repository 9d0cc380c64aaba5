package core

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/karate"
)

// archiveEpoch is the modification time stamped on every archive entry.
// A fixed time keeps fallback conversions byte-identical for identical input.
var archiveEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Assemble serializes the bundle into a zip archive held in memory. Entries
// are written in path order. Two artifacts resolving to the same path mean
// the naming invariant was violated upstream and fail the assembly.
func Assemble(b *karate.Bundle) ([]byte, error) {
	artifacts := b.Artifacts()
	for i := 1; i < len(artifacts); i++ {
		if artifacts[i].Path == artifacts[i-1].Path {
			return nil, &ConversionError{
				Kind:    KindAssembly,
				Message: fmt.Sprintf("artifact path collision: %q", artifacts[i].Path),
			}
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range artifacts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     a.Path,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		})
		if err != nil {
			return nil, &ConversionError{Kind: KindInternal, Message: "failed to create archive entry", Err: err}
		}
		if _, err := w.Write(a.Content); err != nil {
			return nil, &ConversionError{Kind: KindInternal, Message: "failed to write archive entry", Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &ConversionError{Kind: KindInternal, Message: "failed to finalize archive", Err: err}
	}
	return buf.Bytes(), nil
}
