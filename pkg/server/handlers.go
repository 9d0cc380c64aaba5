package server

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/core"
)

// handleHealth reports liveness and, advisory, whether the generation
// service is configured. It never performs network calls.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"message":     "Postman to Karate converter is running",
		"llm_enabled": s.cfg.LLMEnabled(),
	})
}

// handleConvert accepts a collection as a multipart "file" field or as a raw
// JSON body and responds with the suite archive, or a structured error
// payload carrying a machine-readable kind.
func (s *Server) handleConvert(c *fiber.Ctx) error {
	raw, err := collectionBytes(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, core.KindMalformedInput, err.Error())
	}

	result, err := s.converter.Convert(c.UserContext(), raw)
	if err != nil {
		kind := core.KindOf(err)
		status := fiber.StatusInternalServerError
		if kind.InputError() {
			status = fiber.StatusBadRequest
		}
		s.log.Warn("conversion failed", zap.String("kind", string(kind)), zap.Error(err))
		return errorResponse(c, status, kind, err.Error())
	}

	if len(result.Warnings) > 0 {
		// Degraded or partially-skipped conversions still succeed; the
		// warnings ride along in a header so the archive stays clean.
		if encoded, err := json.Marshal(result.Warnings); err == nil {
			c.Set("X-Conversion-Warnings", string(encoded))
		}
		s.log.Info("conversion completed with warnings", zap.Strings("warnings", result.Warnings))
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	return c.Send(result.Archive)
}

// collectionBytes normalizes both inbound shapes to one byte buffer.
func collectionBytes(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Filename == "" {
			return nil, fmt.Errorf("no file selected")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return raw, nil
	}

	raw := c.Body()
	if len(raw) == 0 {
		return nil, fmt.Errorf("no JSON data provided")
	}
	return raw, nil
}

func errorResponse(c *fiber.Ctx, status int, kind core.ErrorKind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   string(kind),
		"message": message,
	})
}
