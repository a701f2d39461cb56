package emailgenerate

import "winhouse-quote/internal/common/validation"

const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["industryName", "modules", "totalAmount", "leadName"],
	"properties": {
		"industryName": {"type": "string"},
		"leadName": {"type": "string", "minLength": 1},
		"companyName": {"type": "string"},
		"totalAmount": {"type": "integer", "minimum": 0},
		"modules": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"},
					"description": {"type": "string"}
				}
			}
		}
	}
}`

var inputValidator = validation.MustDocumentValidator(inputSchema)
