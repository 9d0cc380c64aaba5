package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/core"
)

const demoCollection = `{"info":{"name":"Demo"},"item":[{"name":"Get","request":{"method":"GET","url":"https://x/y"}}]}`

func newTestServer(cfg core.Config) *Server {
	converter := core.NewConverter(cfg, nil, nil, nil)
	return New(cfg, converter, nil)
}

func TestHealthEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		cfg         core.Config
		wantLLMFlag bool
	}{
		{name: "fallback mode", cfg: core.Config{}, wantLLMFlag: false},
		{name: "llm configured", cfg: core.Config{GeminiAPIKey: "key"}, wantLLMFlag: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestServer(tt.cfg).App()

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}

			var body struct {
				Status     string `json:"status"`
				LLMEnabled bool   `json:"llm_enabled"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Status != "healthy" {
				t.Errorf("status = %q, want %q", body.Status, "healthy")
			}
			if body.LLMEnabled != tt.wantLLMFlag {
				t.Errorf("llm_enabled = %v, want %v", body.LLMEnabled, tt.wantLLMFlag)
			}
		})
	}
}

func TestConvertEndpoint_RawJSON(t *testing.T) {
	app := newTestServer(core.Config{}).App()

	req := httptest.NewRequest("POST", "/convert", strings.NewReader(demoCollection))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200 (body: %s)", resp.StatusCode, body)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", got)
	}
	if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "karate-test-suite-") {
		t.Errorf("Content-Disposition = %q, want suite filename", got)
	}

	archive, _ := io.ReadAll(resp.Body)
	if len(archive) == 0 || !bytes.HasPrefix(archive, []byte("PK")) {
		t.Error("response body is not a zip archive")
	}
}

func TestConvertEndpoint_MultipartUpload(t *testing.T) {
	app := newTestServer(core.Config{}).App()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "collection.json")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte(demoCollection)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200 (body: %s)", resp.StatusCode, body)
	}

	archive, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(archive, []byte("PK")) {
		t.Error("response body is not a zip archive")
	}
}

func TestConvertEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind string
	}{
		{name: "invalid json", body: "not json at all", wantKind: "malformed_input"},
		{name: "not a collection", body: `{"hello": "world"}`, wantKind: "schema"},
		{name: "empty body", body: "", wantKind: "malformed_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestServer(core.Config{}).App()

			req := httptest.NewRequest("POST", "/convert", strings.NewReader(tt.body))
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}

			var payload struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Error != tt.wantKind {
				t.Errorf("error kind = %q, want %q", payload.Error, tt.wantKind)
			}
			if payload.Message == "" {
				t.Error("message is empty, want a human-readable explanation")
			}
		})
	}
}

func TestConvertEndpoint_WarningsHeader(t *testing.T) {
	app := newTestServer(core.Config{}).App()

	raw := `{"info":{"name":"Mixed"},"item":[
		{"name": "Good", "request": {"method": "GET", "url": "https://x"}},
		{"name": "Bad"}
	]}`
	req := httptest.NewRequest("POST", "/convert", strings.NewReader(raw))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	header := resp.Header.Get("X-Conversion-Warnings")
	if header == "" {
		t.Fatal("X-Conversion-Warnings header missing")
	}
	var warnings []string
	if err := json.Unmarshal([]byte(header), &warnings); err != nil {
		t.Fatalf("warnings header is not a JSON array: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Bad") {
		t.Errorf("warnings = %v, want one naming the skipped node", warnings)
	}
}
