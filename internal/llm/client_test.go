package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestClient_NilProviderUnavailable(t *testing.T) {
	c := NewClient(nil)
	res, err := c.Invoke(context.Background(), InvokeSpec{Human: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available() {
		t.Fatal("expected unavailable result")
	}
}

func TestClient_TemplateSubstitution(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`A Title`)})
	c := NewClient(mock)

	res, err := c.Invoke(context.Background(), InvokeSpec{
		Human: "Create a title for: {prompt}",
		Vars:  map[string]string{"prompt": "learn go"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindText || res.Text != "A Title" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := mock.Calls[0].Messages[0].Content; !strings.Contains(got, "learn go") {
		t.Errorf("variable not substituted: %q", got)
	}
}

func TestClient_MissingVariableIsError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`x`)})
	c := NewClient(mock)

	_, err := c.Invoke(context.Background(), InvokeSpec{
		Human: "Create a title for: {prompt}",
	})
	if err == nil {
		t.Fatal("expected error for unresolved placeholder")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider should not be called on template error, got %d calls", mock.CallCount())
	}
}

func TestClient_UnusedVariableIsError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`x`)})
	c := NewClient(mock)

	_, err := c.Invoke(context.Background(), InvokeSpec{
		Human: "Create a title for: {prompt}",
		Vars:  map[string]string{"prompt": "learn go", "subject": "go"},
	})
	if err == nil {
		t.Fatal("expected error for variable matching no placeholder")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider should not be called on template error, got %d calls", mock.CallCount())
	}
}

func TestClient_StructuredSalvagesFencedOutput(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage("```json\n[\"Topic A\", \"Topic B\"]\n```"),
	})
	c := NewClient(mock)

	res, err := c.Invoke(context.Background(), InvokeSpec{
		Human:      "list topics",
		Structured: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != KindStructured {
		t.Fatalf("expected structured result, got %v", res.Kind)
	}
	var topics []string
	if err := json.Unmarshal(res.Raw, &topics); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if len(topics) != 2 || topics[0] != "Topic A" {
		t.Errorf("unexpected topics: %v", topics)
	}
}

func TestClient_StructuredParseFailureUnavailable(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage("I could not produce the list you asked for."),
	})
	c := NewClient(mock)

	res, err := c.Invoke(context.Background(), InvokeSpec{Human: "x", Structured: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available() {
		t.Fatal("expected unavailable result for unparsable output")
	}
}

func TestClient_ProviderErrorUnavailable(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	c := NewClient(mock)

	res, err := c.Invoke(context.Background(), InvokeSpec{Human: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available() {
		t.Fatal("expected unavailable result on provider error")
	}
}

func TestClient_SchemaRejectsWrongShape(t *testing.T) {
	schema := &Schema{
		Name: "test-valid-flag",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"valid": map[string]any{"type": "boolean"},
			},
			"required": []any{"valid"},
		},
	}

	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`["not", "an", "object"]`)})
	c := NewClient(mock)

	res, err := c.Invoke(context.Background(), InvokeSpec{
		Human:      "x",
		Structured: true,
		Schema:     schema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available() {
		t.Fatal("expected unavailable result for schema mismatch")
	}
}

func TestRenderTemplate(t *testing.T) {
	out, err := renderTemplate("a {x} b {y}", map[string]string{"x": "1", "y": "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a 1 b 2" {
		t.Errorf("got %q", out)
	}

	if _, err := renderTemplate("a {x}", nil); err == nil {
		t.Error("expected error for missing variable")
	}

	if _, err := renderTemplate("a {x}", map[string]string{"x": "1", "z": "3"}); err == nil {
		t.Error("expected error for variable matching no placeholder")
	}
}
