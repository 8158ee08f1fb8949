package profile

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const resultSchemaJSON = `{
  "type": "object",
  "required": ["a", "b", "userAnswer", "correctAnswer", "isCorrect", "responseTime", "timestamp"],
  "properties": {
    "a": {"type": "number"},
    "b": {"type": "number"},
    "userAnswer": {"type": "number"},
    "correctAnswer": {"type": "number"},
    "isCorrect": {"type": "boolean"},
    "responseTime": {"type": "number", "minimum": 0},
    "timestamp": {"type": "number"}
  }
}`

const completedSchemaJSON = `{
  "type": "object",
  "required": ["color", "skin", "animation", "completedAt"],
  "properties": {
    "color": {"enum": ["white", "brown", "skin"]},
    "skin": {"enum": ["winter", "festive", "summer"]},
    "animation": {"enum": ["jump", "smile", "spin"]},
    "completedAt": {"type": "number"}
  }
}`

var (
	resultSchema    = mustCompile("result", resultSchemaJSON)
	completedSchema = mustCompile("completed-character", completedSchemaJSON)
)

func compileSchema(name, def string) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", name, err)
	}
	return compiled, nil
}

func mustCompile(name, def string) *jsonschema.Schema {
	s, err := compileSchema(name, def)
	if err != nil {
		panic(err)
	}
	return s
}
