package ruleset

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// rulesetSchema validates ruleset files before they are decoded into the
// Ruleset struct, so a typo'd key or wrong type fails with a clear message
// instead of silently falling back to defaults.
const rulesetSchema = `{
  "type": "object",
  "required": ["name", "markers"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "title": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min_len": {"type": "integer", "minimum": 1},
        "max_len": {"type": "integer", "minimum": 1},
        "exclude_keywords": {"type": "array", "items": {"type": "string"}}
      }
    },
    "markers": {
      "type": "object",
      "required": ["ingredients_start", "instructions_start"],
      "additionalProperties": false,
      "properties": {
        "ingredients_start": {"type": "string", "minLength": 1},
        "instructions_start": {"type": "string", "minLength": 1}
      }
    },
    "classifier": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "unit_keywords": {"type": "array", "items": {"type": "string"}},
        "cooking_verbs": {"type": "array", "items": {"type": "string"}},
        "yield_keywords": {"type": "array", "items": {"type": "string"}},
        "timing_keywords": {"type": "array", "items": {"type": "string"}},
        "min_page_chars": {"type": "integer", "minimum": 0},
        "weights": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "unit": {"type": "number"},
            "verb": {"type": "number"},
            "yield": {"type": "number"},
            "timing": {"type": "number"},
            "caps": {"type": "number"},
            "leaders": {"type": "number"}
          }
        }
      }
    },
    "cleanup": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["pattern", "replace"],
        "additionalProperties": false,
        "properties": {
          "pattern": {"type": "string", "minLength": 1},
          "replace": {"type": "string"}
        }
      }
    },
    "toc": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "start_page": {"type": "integer", "minimum": 0},
        "end_page": {"type": "integer", "minimum": 0},
        "match_threshold": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_threshold": {"type": "number", "minimum": 0, "maximum": 1}
      }
    },
    "validation": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min_ingredients_chars": {"type": "integer", "minimum": 0},
        "min_instructions_chars": {"type": "integer", "minimum": 0}
      }
    },
    "lookahead_pages": {"type": "integer", "minimum": 0}
  }
}`

var compiledSchema = jsonschema.MustCompileString("ruleset.schema.json", rulesetSchema)

// Parse validates raw YAML against the ruleset schema, decodes it, and
// compiles the result.
func Parse(data []byte) (*Ruleset, error) {
	// Decode once into a generic value for schema validation.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var r Ruleset
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode ruleset: %w", err)
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("ruleset has no name")
	}
	if err := r.Compile(); err != nil {
		return nil, err
	}
	return &r, nil
}
