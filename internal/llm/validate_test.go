package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func verdictSchema() *Schema {
	return &Schema{
		Name: "answer_verdict",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"is_correct": map[string]any{"type": "boolean"},
				"feedback":   map[string]any{"type": "string"},
			},
			"required": []any{"is_correct", "feedback"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"is_correct":true,"feedback":"well done"}`)
	if err := validateResponse(verdictSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"is_correct":true}`)
	err := validateResponse(verdictSchema(), raw)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"is_correct":"yes","feedback":"ok"}`)
	if err := validateResponse(verdictSchema(), raw); err == nil {
		t.Fatal("expected validation error for wrong type")
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"is_correct":`)
	err := validateResponse(verdictSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should skip validation, got: %v", err)
	}
}
