package karate

import (
	"fmt"
	"strings"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/postman"
)

// scenarioPrompt builds the generation prompt for one request. The sections
// are ordered most-important-first: role, request details, then the output
// contract.
func scenarioPrompt(collectionName string, fr postman.FlattenedRequest) string {
	var sb strings.Builder
	sb.WriteString(promptIdentity)
	sb.WriteString(requestSection(collectionName, fr))
	sb.WriteString(promptRequirements)
	sb.WriteString(promptOutputFormat)
	return sb.String()
}

// strictScenarioPrompt is the retry prompt used after an unparseable
// response. It repeats the request and hardens the output contract.
func strictScenarioPrompt(collectionName string, fr postman.FlattenedRequest) string {
	var sb strings.Builder
	sb.WriteString(promptIdentity)
	sb.WriteString(requestSection(collectionName, fr))
	sb.WriteString(promptStrictOutput)
	return sb.String()
}

const promptIdentity = `## ROLE
You are an expert in the Apache Karate testing framework. You convert one
HTTP request from a Postman collection into a single Karate .feature file.

`

func requestSection(collectionName string, fr postman.FlattenedRequest) string {
	var sb strings.Builder
	sb.WriteString("## REQUEST\n")
	fmt.Fprintf(&sb, "Collection: %s\n", collectionName)
	if len(fr.Folders) > 0 {
		fmt.Fprintf(&sb, "Folder: %s\n", strings.Join(fr.Folders, " / "))
	}
	fmt.Fprintf(&sb, "Name: %s\n", fr.Name)
	fmt.Fprintf(&sb, "Method: %s\n", fr.Request.Method)
	fmt.Fprintf(&sb, "URL: %s\n", fr.Request.URL)
	for _, h := range fr.Request.Headers {
		fmt.Fprintf(&sb, "Header: %s: %s\n", h.Key, h.Value)
	}
	if fr.Request.Auth != nil {
		fmt.Fprintf(&sb, "Auth scheme: %s\n", fr.Request.Auth.Type)
	}
	if body := strings.TrimSpace(fr.Request.Body); body != "" {
		fmt.Fprintf(&sb, "Body:\n%s\n", body)
	}
	sb.WriteString("\n")
	return sb.String()
}

const promptRequirements = `## REQUIREMENTS
- Use proper Karate syntax and conventions
- One Feature with at least one Scenario exercising the request exactly as given
- Keep {{variable}} placeholders verbatim; they resolve at runtime
- Assert a successful status class and validate the response shape where the
  request makes the expected shape obvious
- Use descriptive scenario names

`

const promptOutputFormat = `## OUTPUT FORMAT
Respond with the raw content of the .feature file and nothing else. The first
line must start with "Feature:". Do not wrap the output in markdown fences.
`

const promptStrictOutput = `## OUTPUT FORMAT (STRICT)
Your previous output could not be parsed as a Karate feature file.
Respond with ONLY the feature file content:
- The very first line must start with "Feature:"
- Include at least one line starting with "Scenario"
- No markdown fences, no commentary, no JSON wrapper
`
