package eventrelay

import "winhouse-quote/internal/common/validation"

// inputSchema mirrors the checks of the public webhook: the three fields
// must be present and non-empty.
const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["event", "timestamp", "data"],
	"properties": {
		"event": {"type": "string", "minLength": 1},
		"timestamp": {"type": "string", "minLength": 1},
		"data": {"type": "object"}
	}
}`

var inputValidator = validation.MustDocumentValidator(inputSchema)
