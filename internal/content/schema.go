package content

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const lessonsSchema = `{
  "type": "object",
  "required": ["lessons"],
  "properties": {
    "lessons": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "category", "content"],
        "properties": {
          "id":          {"type": "integer", "minimum": 1},
          "title":       {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "category":    {"type": "string", "minLength": 1},
          "level":       {"type": "string"},
          "duration":    {"type": "string"},
          "featured":    {"type": "boolean"},
          "content":     {"type": "string"}
        }
      }
    }
  }
}`

const quizSchema = `{
  "type": "object",
  "required": ["quiz"],
  "properties": {
    "quiz": {
      "type": "object",
      "required": ["title", "questions"],
      "properties": {
        "title":       {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "questions": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["id", "question", "options", "correct_answer"],
            "properties": {
              "id":             {"type": "integer"},
              "question":       {"type": "string", "minLength": 1},
              "options":        {"type": "array", "minItems": 2, "items": {"type": "string"}},
              "correct_answer": {"type": "integer", "minimum": 0},
              "explanation":    {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

var (
	lessonsSchemaLoader = gojsonschema.NewStringLoader(lessonsSchema)
	quizSchemaLoader    = gojsonschema.NewStringLoader(quizSchema)
)

// validateDocument checks a decoded YAML document against a JSON schema.
func validateDocument(schema gojsonschema.JSONLoader, doc any) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("document does not match schema: %s", strings.Join(msgs, "; "))
}
