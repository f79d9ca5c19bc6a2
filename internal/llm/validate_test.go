package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name: "test-exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":   map[string]any{"type": "string"},
			"points": map[string]any{"type": "integer", "minimum": 1},
		},
		"required":             []any{"text", "points"},
		"additionalProperties": false,
	},
}

func TestValidate_ConformingDocument(t *testing.T) {
	raw := json.RawMessage(`{"text":"find the odd one out","points":5}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NilSchemaSkipsValidation(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"not json", "Category: something"},
		{"missing field", `{"text":"x"}`},
		{"wrong type", `{"text":"x","points":"five"}`},
		{"below minimum", `{"text":"x","points":0}`},
		{"extra field", `{"text":"x","points":1,"hint":"y"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateResponse(testSchema, json.RawMessage(tc.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
		})
	}
}
