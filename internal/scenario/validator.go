package scenario

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const schemaURL = "https://pokerdrill.dev/schemas/scenario.json"

// Validator checks raw scenario documents against the embedded JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the scenario schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	data, err := schemaFiles.ReadFile("schemas/scenario.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario schema: %w", err)
	}
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add scenario schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile scenario schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

var (
	defaultValidator     *Validator
	defaultValidatorErr  error
	defaultValidatorOnce sync.Once
)

// DefaultValidator returns a process-wide compiled validator.
func DefaultValidator() (*Validator, error) {
	defaultValidatorOnce.Do(func() {
		defaultValidator, defaultValidatorErr = NewValidator()
	})
	return defaultValidator, defaultValidatorErr
}

// ValidateJSON checks a raw document against the schema.
func (v *Validator) ValidateJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
