package lesson

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a JSON lesson document. It does not validate; JSON type
// mismatches are reported as *ValidationError naming the field.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "document"
			}
			return nil, invalid(field, fmt.Sprintf("must be %s", typeErr.Type))
		}
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return nil, vErr
		}
		return nil, fmt.Errorf("decode lesson: %w", err)
	}
	return &doc, nil
}

// DecodeYAML parses a YAML-authored lesson through the JSON model so both
// formats share one set of rules.
func DecodeYAML(data []byte) (*Document, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode lesson yaml: %w", err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("convert lesson yaml: %w", err)
	}
	return Decode(raw)
}

// Parse decodes and validates a lesson. format is "json" or "yaml".
func Parse(data []byte, format string) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch format {
	case "yaml", "yml":
		doc, err = DecodeYAML(data)
	default:
		doc, err = Decode(data)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads, decodes and validates the lesson file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lesson: %w", err)
	}
	doc, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// FormatOf guesses a lesson file format from its extension.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Encode renders a document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Clone returns a deep copy of doc.
func Clone(doc *Document) (*Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("clone lesson: %w", err)
	}
	return Decode(data)
}
