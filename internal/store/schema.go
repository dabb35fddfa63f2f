package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Record schemas. A stored blob that fails its schema is treated as absent.
var (
	profileSchema = map[string]any{
		"type":     "object",
		"required": []any{"interests", "difficulty", "streakCount", "completedChallenges"},
		"properties": map[string]any{
			"interests": map[string]any{
				"type": "array",
				"items": map[string]any{
					"enum": []any{"fitness", "creativity", "mindfulness", "learning", "social"},
				},
			},
			"difficulty":          map[string]any{"enum": []any{"easy", "medium", "hard"}},
			"streakCount":         map[string]any{"type": "integer", "minimum": 0},
			"completedChallenges": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"lastCompletionDate":  map[string]any{"type": "string"},
		},
	}

	messagesSchema = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id", "text", "fromUser", "timestamp"},
			"properties": map[string]any{
				"id":        map[string]any{"type": "string"},
				"text":      map[string]any{"type": "string"},
				"fromUser":  map[string]any{"type": "boolean"},
				"timestamp": map[string]any{"type": "string"},
			},
		},
	}

	settingsSchema = map[string]any{
		"type":     "object",
		"required": []any{"enabled", "hour", "minute", "frequency"},
		"properties": map[string]any{
			"enabled":   map[string]any{"type": "boolean"},
			"hour":      map[string]any{"type": "integer", "minimum": 0, "maximum": 23},
			"minute":    map[string]any{"type": "integer", "minimum": 0, "maximum": 59},
			"frequency": map[string]any{"enum": []any{"daily", "weekly"}},
			"weekday":   map[string]any{"type": "integer", "minimum": 0, "maximum": 6},
		},
	}
)

// schemaCache caches compiled schemas by key.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func schemaFor(key string) map[string]any {
	switch key {
	case KeyProfile:
		return profileSchema
	case KeyMessages:
		return messagesSchema
	case KeySettings:
		return settingsSchema
	}
	return nil
}

// validateRecord checks raw against the schema registered for key.
// Keys without a schema always pass.
func validateRecord(key string, raw []byte) error {
	def := schemaFor(key)
	if def == nil {
		return nil
	}

	compiled, err := compiledSchema(key, def)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", key, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(key string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON document, not Go literals.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", key)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(key, compiled)
	return compiled, nil
}
