// Package schemas validates analysis artifacts against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/collinhord/rock-ai-hackathon-2025-sub000/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ArtifactSchema maps an exported file name to the embedded schema that
// describes it. ok is false for files without a schema.
func ArtifactSchema(fileName string) (string, bool) {
	switch strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)) {
	case "relationships":
		return schemafiles.Relationships, true
	case "recommendations":
		return schemafiles.Recommendations, true
	case "summary":
		return schemafiles.Summary, true
	}
	return "", false
}

// ValidateArtifact validates raw JSON against one of the embedded schemas,
// named by its file name (see the schemas package constants).
func ValidateArtifact(schemaName string, data []byte) error {
	schemaBytes, err := schemafiles.FS.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "unknown embedded schema", Cause: err}
	}
	return validate(schemaName, gojsonschema.NewBytesLoader(schemaBytes), gojsonschema.NewBytesLoader(data))
}

// ValidateValue marshals v and validates it against an embedded schema.
func ValidateValue(schemaName string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for validation: %w", err)
	}
	return ValidateArtifact(schemaName, data)
}

// ValidateFile validates an exported JSON file against the schema its name
// maps to.
func ValidateFile(jsonPath string) error {
	schemaName, ok := ArtifactSchema(jsonPath)
	if !ok {
		return fmt.Errorf("no schema for artifact %s", filepath.Base(jsonPath))
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}
	return ValidateArtifact(schemaName, data)
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "failed to resolve schema path", Cause: err}
	}
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	if _, err := os.Stat(schemaAbsPath); err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "schema file not found", Cause: err}
	}
	if _, err := os.Stat(jsonAbsPath); err != nil {
		return fmt.Errorf("JSON file not found: %s: %w", jsonPath, err)
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(schemaAbsPath))
	documentLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(jsonAbsPath))
	return validate(schemaPath, schemaLoader, documentLoader)
}

// ValidateJSONString validates a JSON string against a schema string
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("inline", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

func validate(schemaName string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "failed to parse schema", Cause: err}
	}

	result, err := schema.Validate(documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		field := e.Field()
		if field == "(root)" {
			field = "root"
		}
		fieldErrors = append(fieldErrors, FieldError{Field: field, Message: e.Description()})
	}
	return &ValidationError{Errors: fieldErrors}
}
