// Package schemas validates JSON documents against JSON Schema (draft-07) with gojsonschema.
package schemas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rootField names errors reported against the document itself
const rootField = "(root)"

// ValidationError lists every schema violation found in a document
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one violation at a dotted field path
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError means the schema itself could not be read or compiled
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ErrNotJSON is returned when the document is not parseable JSON.
var ErrNotJSON = errors.New("document is not valid JSON")

// Validator is a compiled schema. It is safe for concurrent use.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile compiles an in-memory JSON Schema document, such as the map from llm.Schema.JSONSchema.
func Compile(schema any) (*Validator, error) {
	return compile("(in-memory schema)", gojsonschema.NewGoLoader(schema))
}

// CompileFile compiles the JSON Schema stored at path.
func CompileFile(path string) (*Validator, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "cannot resolve path", Cause: err}
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, &SchemaLoadError{Path: abs, Message: "schema file not found"}
		}
		return nil, &SchemaLoadError{Path: abs, Message: "cannot stat schema file", Cause: err}
	}
	return compile(abs, gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(abs)))
}

func compile(name string, loader gojsonschema.JSONLoader) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	return &Validator{name: name, schema: schema}, nil
}

// Validate checks document against the schema. Violations come back as a *ValidationError;
// a document that is not JSON at all wraps ErrNotJSON.
func (v *Validator) Validate(document []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if result.Valid() {
		return nil
	}

	violations := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = rootField
		}
		violations.Errors = append(violations.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return violations
}

// ValidateFile validates the JSON file at jsonPath.
func (v *Validator) ValidateFile(jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return v.Validate(data)
}

// ValidateFile validates a JSON file against an in-memory JSON Schema document.
func ValidateFile(schema any, jsonPath string) error {
	v, err := Compile(schema)
	if err != nil {
		return err
	}
	return v.ValidateFile(jsonPath)
}

// ValidateJSON validates a JSON file against a JSON Schema file.
func ValidateJSON(schemaPath, jsonPath string) error {
	v, err := CompileFile(schemaPath)
	if err != nil {
		return err
	}
	return v.ValidateFile(jsonPath)
}
