package karate

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

func demoCollection(t *testing.T) *postman.Collection {
	t.Helper()
	col, err := postman.Parse([]byte(`{"info":{"name":"Demo"},"item":[{"name":"Get","request":{"method":"GET","url":"https://x/y"}}]}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return col
}

func TestFallbackGenerator_DemoCollection(t *testing.T) {
	gen := NewFallbackGenerator(nil)
	bundle, err := gen.Generate(context.Background(), demoCollection(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if bundle.Len() != SharedArtifactCount+1 {
		t.Errorf("Len() = %d, want %d", bundle.Len(), SharedArtifactCount+1)
	}

	byPath := map[string]string{}
	for _, a := range bundle.Artifacts() {
		if _, dup := byPath[a.Path]; dup {
			t.Errorf("duplicate artifact path %q", a.Path)
		}
		byPath[a.Path] = string(a.Content)
	}

	for _, shared := range []string{ConfigPath, RunnerPath, CommonFeaturePath, ReadmePath} {
		if _, ok := byPath[shared]; !ok {
			t.Errorf("missing shared artifact %q", shared)
		}
	}

	feature, ok := byPath["features/get.feature"]
	if !ok {
		t.Fatalf("missing feature artifact, have %v", keys(byPath))
	}
	for _, want := range []string{
		"Given url 'https://x/y'",
		"When method GET",
		"Then assert responseStatus >= 200 && responseStatus < 300",
		"And assert response != null",
	} {
		if !strings.Contains(feature, want) {
			t.Errorf("feature missing %q:\n%s", want, feature)
		}
	}
}

func TestFallbackGenerator_Deterministic(t *testing.T) {
	col := demoCollection(t)
	gen := NewFallbackGenerator(nil)

	first, err := gen.Generate(context.Background(), col)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := gen.Generate(context.Background(), col)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	fa, sa := first.Artifacts(), second.Artifacts()
	if len(fa) != len(sa) {
		t.Fatalf("artifact counts differ: %d vs %d", len(fa), len(sa))
	}
	for i := range fa {
		if fa[i].Path != sa[i].Path || !bytes.Equal(fa[i].Content, sa[i].Content) {
			t.Errorf("artifact %q differs between runs", fa[i].Path)
		}
	}
}

func TestFallbackGenerator_ZeroRequests(t *testing.T) {
	col := &postman.Collection{Name: "Empty"}
	bundle, err := NewFallbackGenerator(nil).Generate(context.Background(), col)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if bundle.Len() != SharedArtifactCount {
		t.Errorf("Len() = %d, want %d shared artifacts only", bundle.Len(), SharedArtifactCount)
	}
}

func TestFeatureTemplate_HeadersAndBody(t *testing.T) {
	fr := postman.FlattenedRequest{
		Name:    "Create User",
		Folders: []string{"Users"},
		Request: postman.Request{
			Method: "POST",
			URL:    "{{baseUrl}}/users",
			Headers: []postman.Header{
				{Key: "Content-Type", Value: "application/json"},
				{Key: "X-Request-Id", Value: "{{reqId}}"},
			},
			Body: `{"name": "test"}`,
			Auth: &postman.Auth{Type: "bearer"},
		},
	}

	got := FeatureTemplate(fr)
	for _, want := range []string{
		"Feature: Users / Create User",
		"Given url '{{baseUrl}}/users'",
		"And header Content-Type = 'application/json'",
		"And header X-Request-Id = '{{reqId}}'",
		"And request",
		`{"name": "test"}`,
		"When method POST",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("template missing %q:\n%s", want, got)
		}
	}
}

func TestRenderConfig_Environments(t *testing.T) {
	envs := map[string]map[string]string{
		"dev":  {"baseUrl": "http://localhost:9999"},
		"prod": {"baseUrl": "https://api.example.com", "apiKey": "secret"},
	}

	got := renderConfig(envs)
	for _, want := range []string{
		"if (env === 'dev')",
		"config.baseUrl = 'http://localhost:9999';",
		"} else if (env === 'prod')",
		"config.apiKey = 'secret';",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("config missing %q:\n%s", want, got)
		}
	}
}

func TestRunnerClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Demo", want: "DemoTestRunner"},
		{in: "my-api collection", want: "MyApiCollectionTestRunner"},
		{in: "42nd API", want: "Collection42ndAPITestRunner"},
		{in: "***", want: "CollectionTestRunner"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := runnerClassName(tt.in); got != tt.want {
				t.Errorf("runnerClassName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
