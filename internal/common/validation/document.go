package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// DocumentValidator checks decoded JSON payloads against a compiled JSON
// Schema (draft 7).
type DocumentValidator struct {
	schema *gojsonschema.Schema
}

// NewDocumentValidator compiles schemaJSON. It fails on malformed schemas.
func NewDocumentValidator(schemaJSON string) (*DocumentValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &DocumentValidator{schema: schema}, nil
}

// MustDocumentValidator panics on a malformed schema; use for package-level
// schema constants.
func MustDocumentValidator(schemaJSON string) *DocumentValidator {
	v, err := NewDocumentValidator(schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks doc (any JSON-marshalable value) and reports each
// violation with its field path and gojsonschema error type.
func (v *DocumentValidator) Validate(doc interface{}) (*ValidationResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    e.Type(),
		})
	}
	return out, nil
}
