package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// JSONSchema defines the structure for input schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Const       interface{}         `json:"const,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	Format      string              `json:"format,omitempty"` // "email"
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`

	// Messages overrides the default message per error code.
	Messages map[string]string `json:"-"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error codes produced by ValidateInput.
const (
	CodeRequired      = "REQUIRED_FIELD_MISSING"
	CodeInvalidType   = "INVALID_TYPE"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeMinLength     = "MIN_LENGTH_VIOLATION"
	CodeMaxLength     = "MAX_LENGTH_VIOLATION"
	CodePattern       = "PATTERN_MISMATCH"
	CodeEnum          = "INVALID_ENUM_VALUE"
	CodeConst         = "CONST_MISMATCH"
	CodeMinimum       = "MINIMUM_VIOLATION"
	CodeMaximum       = "MAXIMUM_VIOLATION"
	CodeExtraField    = "EXTRA_FIELD"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateInput validates input against schema. Errors for one field keep
// rule order (type, format, length, pattern, enum, const) and fields are
// reported in sorted order.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	errors := []ValidationError{}

	for _, requiredField := range schema.Required {
		if _, exists := input[requiredField]; !exists {
			prop := schema.Properties[requiredField]
			errors = append(errors, newError(requiredField, prop, CodeRequired, "required field missing"))
		}
	}

	fields := make([]string, 0, len(input))
	for fieldName := range input {
		fields = append(fields, fieldName)
	}
	sort.Strings(fields)

	for _, fieldName := range fields {
		prop, exists := schema.Properties[fieldName]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, ValidationError{
					Field:   fieldName,
					Message: "field not allowed in schema",
					Code:    CodeExtraField,
				})
			}
			continue
		}

		errors = append(errors, validateField(fieldName, input[fieldName], prop)...)
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func newError(field string, prop Property, code, fallback string) ValidationError {
	msg := fallback
	if custom, ok := prop.Messages[code]; ok {
		msg = custom
	}
	return ValidationError{Field: field, Message: msg, Code: code}
}

func validateField(fieldName string, value interface{}, prop Property) []ValidationError {
	errors := []ValidationError{}

	if typeErr := validateType(value, prop.Type); typeErr != nil {
		return append(errors, newError(fieldName, prop, CodeInvalidType, typeErr.Error()))
	}

	if strVal, ok := value.(string); ok {
		if prop.Format == "email" && !ValidateEmail(strVal) {
			errors = append(errors, newError(fieldName, prop, CodeInvalidFormat, "value must be a valid email address"))
		}

		length := utf8.RuneCountInString(strVal)
		if prop.MinLength != nil && length < *prop.MinLength {
			errors = append(errors, newError(fieldName, prop, CodeMinLength,
				fmt.Sprintf("value must be at least %d characters", *prop.MinLength)))
		}
		if prop.MaxLength != nil && length > *prop.MaxLength {
			errors = append(errors, newError(fieldName, prop, CodeMaxLength,
				fmt.Sprintf("value must be at most %d characters", *prop.MaxLength)))
		}

		if prop.Pattern != nil {
			matched, err := regexp.MatchString(*prop.Pattern, strVal)
			if err != nil || !matched {
				errors = append(errors, newError(fieldName, prop, CodePattern,
					fmt.Sprintf("value must match pattern %s", *prop.Pattern)))
			}
		}

		if len(prop.Enum) > 0 && !contains(prop.Enum, strVal) {
			errors = append(errors, newError(fieldName, prop, CodeEnum,
				fmt.Sprintf("value must be one of %v", prop.Enum)))
		}
	}

	if prop.Const != nil && value != prop.Const {
		errors = append(errors, newError(fieldName, prop, CodeConst,
			fmt.Sprintf("value must be %v", prop.Const)))
	}

	if numVal, ok := toFloat(value); ok {
		if prop.Minimum != nil && numVal < *prop.Minimum {
			errors = append(errors, newError(fieldName, prop, CodeMinimum,
				fmt.Sprintf("value must be >= %g", *prop.Minimum)))
		}
		if prop.Maximum != nil && numVal > *prop.Maximum {
			errors = append(errors, newError(fieldName, prop, CodeMaximum,
				fmt.Sprintf("value must be <= %g", *prop.Maximum)))
		}
	}

	if arrVal, ok := value.([]interface{}); ok && prop.Items != nil {
		for i, item := range arrVal {
			errors = append(errors, validateField(fmt.Sprintf("%s[%d]", fieldName, i), item, *prop.Items)...)
		}
	}

	if objVal, ok := value.(map[string]interface{}); ok && prop.Properties != nil {
		nestedSchema := JSONSchema{
			Type:                 "object",
			Properties:           prop.Properties,
			Required:             prop.Required,
			AdditionalProperties: true,
		}
		for _, nestedErr := range ValidateInput(objVal, nestedSchema).Errors {
			nestedErr.Field = fmt.Sprintf("%s.%s", fieldName, nestedErr.Field)
			errors = append(errors, nestedErr)
		}
	}

	return errors
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func validateType(value interface{}, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number":
		if _, ok := toFloat(value); !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
	case "integer":
		switch v := value.(type) {
		case int, int32, int64:
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	case "array":
		if _, ok := value.([]interface{}); !ok {
			return fmt.Errorf("expected array, got %T", value)
		}
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// FirstErrors returns the first message recorded for each field.
func (vr *ValidationResult) FirstErrors() map[string]string {
	out := make(map[string]string, len(vr.Errors))
	for _, err := range vr.Errors {
		if _, seen := out[err.Field]; !seen {
			out[err.Field] = err.Message
		}
	}
	return out
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateURL validates URL format
func ValidateURL(url string) bool {
	urlPattern := regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
	return urlPattern.MatchString(url)
}

// IntPtr and FloatPtr help build schema literals.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

func StringPtr(v string) *string { return &v }
