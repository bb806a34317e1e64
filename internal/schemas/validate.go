// Package schemas validates JobBody JSON documents against the embedded
// JSON Schema. Gold-standard few-shot examples and model output both pass
// through here before anything downstream trusts them.
package schemas

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed jobbody.schema.json
var jobBodySchemaJSON []byte

var (
	jobBodySchema     *gojsonschema.Schema
	jobBodySchemaOnce sync.Once
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func compiledJobBodySchema() *gojsonschema.Schema {
	jobBodySchemaOnce.Do(func() {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jobBodySchemaJSON))
		if err != nil {
			panic(fmt.Sprintf("failed to compile embedded JobBody schema: %v", err))
		}
		jobBodySchema = schema
	})
	return jobBodySchema
}

// ValidateJobBody validates a JSON document against the JobBody schema.
// Malformed JSON and schema violations both return errors; schema
// violations are *ValidationError with per-field detail.
func ValidateJobBody(jsonContent string) error {
	result, err := compiledJobBodySchema().Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return fmt.Errorf("failed to parse job body JSON: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateJobBodyFile validates a JSON file against the JobBody schema.
func ValidateJobBodyFile(jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read job body file: %w", err)
	}
	return ValidateJobBody(string(data))
}
