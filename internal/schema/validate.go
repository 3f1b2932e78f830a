package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a contract violation with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema contract violated:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a raw JSON payload against the extraction contract.
// Returns nil when the payload conforms, a *ValidationError when it does
// not, and a plain error when the payload is not valid JSON at all.
func Validate(payload []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(ContractJSON())
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate payload: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, e := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return ve
}
