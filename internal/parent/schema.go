package parent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// snapshotSchema rejects malformed snapshot files before any record is
// written back. Unknown game IDs pass the schema and are rejected by
// ImportSnapshot itself.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "timestamp", "games"],
  "properties": {
    "id": { "type": "string", "minLength": 1 },
    "timestamp": { "type": "string" },
    "games": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["score", "level"],
        "properties": {
          "score": { "type": "integer", "minimum": 0 },
          "level": { "type": "integer", "minimum": 1 }
        }
      }
    },
    "achievements": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "dateEarned"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "dateEarned": { "type": "string" }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// getSnapshotSchema compiles the snapshot schema once and caches it.
func getSnapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(snapshotSchema)))
		if err != nil {
			schemaErr = fmt.Errorf("parse snapshot schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("snapshot.json", doc); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("snapshot.json")
	})
	return compiledSchema, schemaErr
}

// validateSnapshot checks raw JSON against the snapshot schema.
func validateSnapshot(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("snapshot is not valid JSON: %w", err)
	}
	schema, err := getSnapshotSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("snapshot failed validation: %w", err)
	}
	return nil
}
