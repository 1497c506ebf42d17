package llm

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	//go:embed schema/resume_record.schema.json
	resumeRecordSchemaJSON string

	resumeRecordSchema = jsonschema.MustCompileString("resume_record.schema.json", resumeRecordSchemaJSON)
)

// ResumeRecordSchema returns the JSON Schema a structured reply must satisfy.
func ResumeRecordSchema() string {
	return resumeRecordSchemaJSON
}

// validateShape checks value types only; every field is optional and may be null.
func validateShape(v any) error {
	return resumeRecordSchema.Validate(v)
}

// stringifyNumbers rewrites numeric leaves as strings. Models often return
// years and phone numbers unquoted, and every scalar in the record is text.
func stringifyNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = stringifyNumbers(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = stringifyNumbers(child)
		}
		return t
	case json.Number:
		return t.String()
	default:
		return v
	}
}
