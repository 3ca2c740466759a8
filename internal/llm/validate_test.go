package llm

import (
	"encoding/json"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-person",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
				"age":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required":             []any{"name", "age"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":10}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"below minimum", `{"name":"Eve","age":-1}`, true},
		{"extra property", `{"name":"Fay","age":3,"x":1}`, true},
		{"not json", `{name: Alice}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if kind, ok := KindOf(err); !ok || kind != KindInvalidResponse {
				t.Fatalf("err = %T %v, want invalid response", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestCompileSchemaCaches(t *testing.T) {
	s := testSchema()
	a, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile again: %v", err)
	}
	if a != b {
		t.Error("expected cached schema on second compile")
	}
}
