package quotedocument

import (
	"errors"

	"winhouse-quote/internal/common/validation"
)

var ErrRenderFailed = errors.New("RENDER_FAILED")

const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["quoteNumber", "lead", "modules", "calculation"],
	"properties": {
		"quoteNumber": {"type": "string", "minLength": 1},
		"industry": {"type": "string"},
		"lead": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"email": {"type": "string"},
				"phone": {"type": "string"},
				"company": {"type": "string"}
			}
		},
		"modules": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["nameVi", "basePrice"],
				"properties": {
					"nameVi": {"type": "string"},
					"descriptionVi": {"type": "string"},
					"basePrice": {"type": "integer", "minimum": 0},
					"monthlyPrice": {"type": "integer", "minimum": 0},
					"estimatedDays": {"type": "integer", "minimum": 0}
				}
			}
		},
		"calculation": {
			"type": "object",
			"required": ["subtotal", "total"],
			"properties": {
				"subtotal": {"type": "integer"},
				"monthlyTotal": {"type": "integer"},
				"discount": {"type": "integer"},
				"discountPercent": {"type": "integer"},
				"total": {"type": "integer"},
				"estimatedDays": {"type": "integer"},
				"moduleCount": {"type": "integer"}
			}
		}
	}
}`

var inputValidator = validation.MustDocumentValidator(inputSchema)
