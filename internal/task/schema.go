package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// listSchema is the JSON Schema for an owner's on-disk task collection.
const listSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version", "owner", "tasks"],
  "properties": {
    "schema_version": {"const": 1},
    "owner": {"type": "string"},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "priority", "created_at", "position"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "priority": {"enum": ["high", "medium", "low"]},
          "due_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
          "done": {"type": "boolean"},
          "created_at": {"type": "string"},
          "position": {"type": "integer", "minimum": 0}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledListSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource("tasks.schema.json", strings.NewReader(listSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("tasks.schema.json")
	})
	return compiledSchema, schemaErr
}

// ValidateSchema validates a collection against the embedded JSON Schema.
func ValidateSchema(l *List) error {
	schema, err := compiledListSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so the validator sees the wire shape.
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal collection for validation: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal collection for validation: %w", err)
	}

	if err := schema.Validate(obj); err != nil {
		return firstSchemaError(err)
	}
	return nil
}

// firstSchemaError flattens a jsonschema error tree into the deepest cause.
func firstSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	field = strings.ReplaceAll(field, "/", ".")
	return &ValidationError{Field: field, Err: fmt.Errorf("%s", ve.Message)}
}
