package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidMindMap indicates the payload is not a well-formed mind-map body.
var ErrInvalidMindMap = errors.New("invalid mind map body")

const mindMapSchemaSource = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["format", "data"],
	"properties": {
		"meta": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"version": {"type": "string"}
			}
		},
		"format": {"type": "string", "const": "node_array"},
		"data": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "topic"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"topic": {"type": "string"},
					"parentid": {"type": "string"},
					"isroot": {"type": "string"}
				}
			}
		}
	}
}`

var mindMapSchema = jsonschema.MustCompileString("mindmap.schema.json", mindMapSchemaSource)

// ValidateMindMapBody checks that the payload matches the node-array tree
// structure the frontend renders.
func ValidateMindMapBody(body []byte) error {
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidMindMap)
	}

	var document interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMindMap, err)
	}

	if err := mindMapSchema.Validate(document); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMindMap, err)
	}

	return nil
}
