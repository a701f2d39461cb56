package emailnotify

import "winhouse-quote/internal/common/validation"

const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["data"],
	"properties": {
		"type": {"type": "string", "enum": ["lead_notification", "quote_sent", "welcome"]},
		"to": {"type": "string", "format": "email"},
		"data": {
			"type": "object",
			"required": ["name", "email", "phone"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"email": {"type": "string"},
				"phone": {"type": "string"},
				"modules": {"type": "array", "items": {"type": "string"}},
				"totalAmount": {"type": "integer", "minimum": 0},
				"monthlyAmount": {"type": "integer", "minimum": 0},
				"estimatedDays": {"type": "integer", "minimum": 0}
			}
		}
	}
}`

var inputValidator = validation.MustDocumentValidator(inputSchema)
