package postman

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// collectionSchema is the minimal structural contract a document must meet
// before node-level normalization runs. Anything beyond this is handled
// leniently per node.
const collectionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["info", "item"],
	"properties": {
		"info": {
			"type": "object",
			"properties": {
				"name": {"type": "string"}
			}
		},
		"item": {"type": "array"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(collectionSchema)

// validateSchema checks the raw document against the collection schema and
// returns a *SchemaError describing every violation.
func validateSchema(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &SchemaError{Detail: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return &SchemaError{Detail: strings.Join(details, "; ")}
}
