// Package leadform validates the contact form shown at the lead-capture step.
package leadform

import (
	"winhouse-quote/internal/common/validation"
	"winhouse-quote/internal/models"
)

const (
	msgNameMin     = "Tên phải có ít nhất 2 ký tự"
	msgNameMax     = "Tên không được quá 100 ký tự"
	msgEmail       = "Email không hợp lệ"
	msgEmailMax    = "Email không được quá 255 ký tự"
	msgPhoneMin    = "Số điện thoại phải có ít nhất 10 số"
	msgPhoneMax    = "Số điện thoại không được quá 15 số"
	msgPhone       = "Số điện thoại không hợp lệ (VD: 0901234567)"
	msgCompanyMax  = "Tên công ty không được quá 200 ký tự"
	msgRole        = "Vui lòng chọn vai trò của bạn"
	msgNotesMax    = "Ghi chú không được quá 1000 ký tự"
	msgAcceptTerms = "Bạn cần đồng ý với điều khoản sử dụng"
)

// PhonePattern is a Vietnamese mobile number: 0, a carrier digit, 8 digits.
const PhonePattern = `^0[35789]\d{8}$`

// Schema is the lead form schema with the Vietnamese messages shown to the
// visitor.
func Schema() validation.JSONSchema {
	roles := make([]string, len(models.LeadRoles))
	for i, r := range models.LeadRoles {
		roles[i] = string(r)
	}

	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"name", "email", "phone", "role", "acceptTerms"},
		Properties: map[string]validation.Property{
			"name": {
				Type:      "string",
				MinLength: validation.IntPtr(2),
				MaxLength: validation.IntPtr(100),
				Messages: map[string]string{
					validation.CodeRequired:    msgNameMin,
					validation.CodeInvalidType: msgNameMin,
					validation.CodeMinLength:   msgNameMin,
					validation.CodeMaxLength:   msgNameMax,
				},
			},
			"email": {
				Type:      "string",
				Format:    "email",
				MaxLength: validation.IntPtr(255),
				Messages: map[string]string{
					validation.CodeRequired:      msgEmail,
					validation.CodeInvalidType:   msgEmail,
					validation.CodeInvalidFormat: msgEmail,
					validation.CodeMaxLength:     msgEmailMax,
				},
			},
			"phone": {
				Type:      "string",
				MinLength: validation.IntPtr(10),
				MaxLength: validation.IntPtr(15),
				Pattern:   validation.StringPtr(PhonePattern),
				Messages: map[string]string{
					validation.CodeRequired:    msgPhoneMin,
					validation.CodeInvalidType: msgPhone,
					validation.CodeMinLength:   msgPhoneMin,
					validation.CodeMaxLength:   msgPhoneMax,
					validation.CodePattern:     msgPhone,
				},
			},
			"company": {
				Type:      "string",
				MaxLength: validation.IntPtr(200),
				Messages: map[string]string{
					validation.CodeMaxLength: msgCompanyMax,
				},
			},
			"role": {
				Type: "string",
				Enum: roles,
				Messages: map[string]string{
					validation.CodeRequired:    msgRole,
					validation.CodeInvalidType: msgRole,
					validation.CodeEnum:        msgRole,
				},
			},
			"notes": {
				Type:      "string",
				MaxLength: validation.IntPtr(1000),
				Messages: map[string]string{
					validation.CodeMaxLength: msgNotesMax,
				},
			},
			"acceptTerms": {
				Type:  "boolean",
				Const: true,
				Messages: map[string]string{
					validation.CodeRequired:    msgAcceptTerms,
					validation.CodeInvalidType: msgAcceptTerms,
					validation.CodeConst:       msgAcceptTerms,
				},
			},
		},
		AdditionalProperties: true,
	}
}

// Validate checks a decoded form. The result maps each failing field to its
// first message and is empty when the form is valid.
func Validate(lead models.LeadFormData) map[string]string {
	return ValidateInput(toInput(lead))
}

// ValidateInput checks a raw JSON object, so wrong types and missing keys are
// reported per field as well.
func ValidateInput(input map[string]interface{}) map[string]string {
	return validation.ValidateInput(input, Schema()).FirstErrors()
}

// Decode validates a raw JSON object and converts it to a form. The form is
// only meaningful when the returned map is empty.
func Decode(input map[string]interface{}) (models.LeadFormData, map[string]string) {
	if errs := ValidateInput(input); len(errs) > 0 {
		return models.LeadFormData{}, errs
	}

	lead := models.LeadFormData{
		Name:        input["name"].(string),
		Email:       input["email"].(string),
		Phone:       input["phone"].(string),
		Role:        models.LeadRole(input["role"].(string)),
		AcceptTerms: input["acceptTerms"].(bool),
	}
	if company, ok := input["company"].(string); ok {
		lead.Company = company
	}
	if notes, ok := input["notes"].(string); ok {
		lead.Notes = notes
	}
	return lead, map[string]string{}
}

func toInput(lead models.LeadFormData) map[string]interface{} {
	input := map[string]interface{}{
		"name":        lead.Name,
		"email":       lead.Email,
		"phone":       lead.Phone,
		"role":        string(lead.Role),
		"acceptTerms": lead.AcceptTerms,
	}
	if lead.Company != "" {
		input["company"] = lead.Company
	}
	if lead.Notes != "" {
		input["notes"] = lead.Notes
	}
	return input
}
