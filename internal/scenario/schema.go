package scenario

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

var orderSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":               map[string]any{"type": "string", "minLength": 1},
		"customer_name":    map[string]any{"type": "string"},
		"customer_mood":    map[string]any{"type": "string", "enum": []any{"friendly", "neutral", "hurried", "careful", "angry"}},
		"request_text":     map[string]any{"type": "string"},
		"correct_response": map[string]any{"type": "string"},
		"payment_amount":   map[string]any{"type": "integer", "minimum": 0},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"menu_id":     map[string]any{"type": "string", "minLength": 1},
					"menu_name":   map[string]any{"type": "string"},
					"is_set_menu": map[string]any{"type": "boolean"},
					"options": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"key":         map[string]any{"type": "string", "minLength": 1},
								"label":       map[string]any{"type": "string"},
								"is_required": map[string]any{"type": "boolean"},
							},
							"required": []any{"key", "label"},
						},
					},
					"expected_steps": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required": []any{"menu_id", "menu_name"},
			},
		},
	},
	"required": []any{"id", "customer_name", "customer_mood", "items", "payment_amount"},
}

// DaySchema validates a day file.
var DaySchema = &Schema{
	Name: "day",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":             map[string]any{"type": "string", "minLength": 1},
			"format_version": map[string]any{"type": "string"},
			"day_number":     map[string]any{"type": "integer", "minimum": 1},
			"title":          map[string]any{"type": "string"},
			"description":    map[string]any{"type": "string"},
			"learning_goals": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"required_score": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"unlock_tips":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"stages": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":                      map[string]any{"type": "string", "minLength": 1},
						"type":                    map[string]any{"type": "string", "enum": []any{"counter", "kitchen", "cleaning", "complaint", "mixed"}},
						"title":                   map[string]any{"type": "string"},
						"time_limit_seconds":      map[string]any{"type": "integer", "minimum": 1},
						"max_simultaneous_orders": map[string]any{"type": "integer", "minimum": 0},
						"orders": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items":    orderSchema,
						},
					},
					"required": []any{"id", "type", "time_limit_seconds", "orders"},
				},
			},
		},
		"required": []any{"id", "day_number", "required_score", "stages"},
	},
}

// TipsSchema validates the tips file.
var TipsSchema = &Schema{
	Name: "tips",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":    map[string]any{"type": "string", "minLength": 1},
						"title": map[string]any{"type": "string"},
						"body":  map[string]any{"type": "string"},
					},
					"required": []any{"id", "title", "body"},
				},
			},
		},
		"required": []any{"tips"},
	},
}

// MenuSchema validates the menu catalog file.
var MenuSchema = &Schema{
	Name: "menu",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string", "minLength": 1},
						"name":     map[string]any{"type": "string"},
						"category": map[string]any{"type": "string", "enum": []any{"burger", "side", "drink", "dessert"}},
						"price":    map[string]any{"type": "integer", "minimum": 0},
					},
					"required": []any{"id", "name", "category", "price"},
				},
			},
		},
		"required": []any{"items"},
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks a parsed JSON document against schema.
func validate(schema *Schema, doc any) error {
	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON values, not Go literals.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
