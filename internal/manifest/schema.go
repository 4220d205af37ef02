package manifest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// statsSchema describes the subset of bundler stats that the manifest needs.
// chunks and assets are optional here so that their absence produces the more
// specific ErrNoChunks / ErrNoAssets after decoding.
const statsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "chunks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": { "type": ["string", "integer"] },
          "names": { "type": "array", "items": { "type": "string" } },
          "files": { "type": "array", "items": { "type": "string" } },
          "initial": { "type": "boolean" }
        }
      }
    },
    "assets": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "size"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "size": { "type": "integer", "minimum": 0 }
        }
      }
    }
  }
}`

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation found in a stats document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString("stats validation failed:\n")
	for i, fe := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, fe.Field, fe.Message))
	}
	return sb.String()
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(statsSchema))
})

// ValidateJSON checks raw stats JSON against the embedded schema.
func ValidateJSON(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile stats schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read stats document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	out := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, re := range result.Errors() {
		out.Errors = append(out.Errors, FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	return out
}
