package lesson

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://lexiz/lesson-v1.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

var boundSchema = map[string]any{"type": "number", "minimum": 0, "maximum": 100}

var wordContentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"word":   map[string]any{"type": "string", "minLength": 1},
		"image":  map[string]any{"type": "string"},
		"imgUrl": map[string]any{"type": "string"},
	},
	"required": []any{"word"},
}

var roomSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"background": map[string]any{"type": "string", "minLength": 1},
		"objects": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"itemId":      map[string]any{"type": "string", "minLength": 1},
					"x":           boundSchema,
					"y":           boundSchema,
					"w":           boundSchema,
					"h":           boundSchema,
					"label":       map[string]any{"type": "string"},
					"hint":        map[string]any{"type": "boolean"},
					"activeOrder": map[string]any{"type": "integer"},
				},
				"required":             []any{"id", "itemId", "x", "y", "w", "h"},
				"additionalProperties": false,
			},
		},
		"hintMode":       map[string]any{"enum": hintModesAsAny()},
		"hintDurationMs": map[string]any{"type": "integer", "minimum": 0},
		"hintDelayMs":    map[string]any{"type": "integer", "minimum": 0},
		"sequenceMode":   map[string]any{"type": "string"},
	},
	"required":             []any{"background", "objects"},
	"additionalProperties": false,
}

var sentenceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"background": map[string]any{"type": "string"},
		"tokens": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"kind":        map[string]any{"enum": []any{"text", "blank"}},
					"value":       map[string]any{"type": "string"},
					"id":          map[string]any{"type": "string"},
					"placeholder": map[string]any{"type": "string"},
				},
				"required": []any{"kind"},
			},
		},
		"wordBank": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"answers":  map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
	},
	"required": []any{"tokens", "wordBank"},
}

var picSelectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "integer", "minimum": 0},
				map[string]any{"type": "array"},
			},
		},
		"choicesPerQuestion": map[string]any{"type": "integer", "minimum": 2},
		"ttsOnPrompt":        map[string]any{"type": "boolean"},
		"includeWordLabel":   map[string]any{"type": "boolean"},
	},
	"required": []any{"questions"},
}

var bubbleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"background": map[string]any{"type": "string"},
		"maxBubbles": map[string]any{"type": "integer", "minimum": 0},
	},
}

// lessonSchema is the strict authoring schema for version 1 documents.
// Validate enforces what the runtime needs; the schema also rejects typos
// and unknown enum values that the runtime would silently ignore.
var lessonSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version":  map[string]any{"const": SchemaVersion},
		"lessonId": map[string]any{"type": "string", "minLength": 1},
		"title":    map[string]any{"type": "string", "minLength": 1},
		"defaults": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"ui": map[string]any{"enum": modesAsAny()},
				"features": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"tts":          map[string]any{"type": "boolean"},
						"speech":       map[string]any{"type": "boolean"},
						"picSelection": map[string]any{"type": "boolean"},
					},
				},
				"background":      map[string]any{"type": "string"},
				"room2d":          roomSchema,
				"sentenceBuilder": sentenceSchema,
				"floatingBubble":  bubbleSchema,
			},
			"required":             []any{"ui", "features"},
			"additionalProperties": false,
		},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{"enum": []any{"vocab", "info", "scene"}},
					"ui":   map[string]any{"enum": modesAsAny()},
				},
				"required": []any{"id", "type"},
				"allOf": []any{
					map[string]any{
						"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"enum": []any{"vocab", "info"}}}},
						"then": map[string]any{"properties": map[string]any{"content": wordContentSchema}},
					},
					map[string]any{
						"if": map[string]any{"properties": map[string]any{"type": map[string]any{"const": "scene"}}},
						"then": map[string]any{"properties": map[string]any{"content": map[string]any{
							"type":       "object",
							"properties": map[string]any{"room2d": roomSchema},
						}}},
					},
				},
			},
		},
		"content": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"picSelection":    picSelectionSchema,
				"sentenceBuilder": sentenceSchema,
				"floatingBubble":  bubbleSchema,
				"room2d":          roomSchema,
			},
			"additionalProperties": false,
		},
	},
	"required":             []any{"version", "lessonId", "title", "defaults", "items"},
	"additionalProperties": false,
}

func modesAsAny() []any {
	out := make([]any, len(AllModes))
	for i, m := range AllModes {
		out[i] = string(m)
	}
	return out
}

func hintModesAsAny() []any {
	out := make([]any, len(HintModes))
	for i, h := range HintModes {
		out[i] = string(h)
	}
	return out
}

// LintError wraps a strict schema violation.
type LintError struct {
	Err error
}

func (e *LintError) Error() string {
	return fmt.Sprintf("lesson schema: %v", e.Err)
}

func (e *LintError) Unwrap() error {
	return e.Err
}

// Lint checks raw JSON against the strict authoring schema. It is stricter
// than Validate and meant for authoring tools, not for the runtime path.
func Lint(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return &LintError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := schema()
	if err != nil {
		return fmt.Errorf("compile lesson schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &LintError{Err: err}
	}
	return nil
}

// schema compiles the lesson schema once.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain JSON value; round-trip the Go literal.
		defBytes, err := json.Marshal(lessonSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
