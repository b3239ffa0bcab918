// Package validate checks drained JSON response payloads against JSON
// Schema documents.
package validate

import (
	"fmt"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// Result holds the outcome of a schema validation.
type Result struct {
	Valid  bool
	Errors []string
}

// Response validates a response body against an inline JSON Schema.
func Response(body, schema string) (*Result, error) {
	return run(gojsonschema.NewStringLoader(schema), body)
}

// ResponseAgainstFile validates a response body against a JSON Schema file.
func ResponseAgainstFile(body, schemaPath string) (*Result, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	return run(gojsonschema.NewReferenceLoader("file://"+absPath), body)
}

func run(schemaLoader gojsonschema.JSONLoader, body string) (*Result, error) {
	documentLoader := gojsonschema.NewStringLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	r := &Result{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		r.Errors = append(r.Errors, desc.String())
	}
	return r, nil
}
