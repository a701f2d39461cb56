package server

import (
	"fmt"
	"net/http"

	"winhouse-quote/internal/common/errors"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/validation"
)

// stringFieldSchema requires a single non-empty string property.
func stringFieldSchema(field string) string {
	return fmt.Sprintf(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": [%q],
	"properties": {
		%q: {"type": "string", "minLength": 1}
	}
}`, field, field)
}

var (
	industryValidator = validation.MustDocumentValidator(stringFieldSchema("industry"))
	budgetValidator   = validation.MustDocumentValidator(stringFieldSchema("budget"))
	styleValidator    = validation.MustDocumentValidator(stringFieldSchema("style"))
	moduleValidator   = validation.MustDocumentValidator(stringFieldSchema("moduleId"))
	stepValidator     = validation.MustDocumentValidator(stringFieldSchema("step"))
)

// decodeField reads a JSON body and returns its validated string field.
func decodeField(r *http.Request, v *validation.DocumentValidator, field string) (string, error) {
	raw, err := commonhttp.DecodeObject(r)
	if err != nil {
		return "", errors.NewInvalidPayloadError(err.Error())
	}
	result, err := v.Validate(raw)
	if err != nil {
		return "", errors.NewInvalidPayloadError(err.Error())
	}
	if !result.Valid {
		return "", errors.NewMissingFieldsError(field)
	}
	return raw[field].(string), nil
}
