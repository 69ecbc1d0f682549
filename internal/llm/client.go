package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anand-106/coursegen/internal/salvage"
)

// Client is the invocation layer the course pipeline talks to. It renders a
// human prompt template, sends it through the configured Provider, and
// normalizes the outcome into a Result so callers handle exactly three
// cases: structured value, raw text, or capability unavailable.
type Client struct {
	provider Provider
}

// NewClient creates a Client. A nil provider is valid and means the
// text-generation capability is not configured: every Invoke returns an
// unavailable Result, and callers fall back.
func NewClient(p Provider) *Client {
	return &Client{provider: p}
}

// InvokeSpec describes a single templated call.
type InvokeSpec struct {
	// System sets the model's role and constraints.
	System string

	// Human is the user prompt template. Placeholders of the form {name}
	// are substituted from Vars before sending.
	Human string

	// Vars supplies values for the Human template placeholders.
	Vars map[string]string

	// Structured requests salvage-parsed JSON output; when false the
	// trimmed raw text is returned.
	Structured bool

	// Schema, when set with Structured, is forwarded to the provider's
	// native structured output mechanism and used to validate the salvaged
	// value. A salvaged value that fails validation is treated the same as
	// a parse failure.
	Schema *Schema

	// MaxTokens caps the response size. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness.
	Temperature float64

	// Purpose labels the call for event logging.
	Purpose string
}

// ResultKind discriminates the Result union.
type ResultKind int

const (
	// KindUnavailable means the capability could not produce a usable
	// response: no provider configured, the call failed, or structured
	// output could not be recovered. An expected outcome, not an error.
	KindUnavailable ResultKind = iota

	// KindText carries trimmed raw text.
	KindText

	// KindStructured carries a salvaged JSON value.
	KindStructured
)

// Result is the tagged union returned by Invoke.
type Result struct {
	Kind ResultKind

	// Text is set for KindText.
	Text string

	// Value is the decoded JSON value for KindStructured.
	Value any

	// Raw is the re-marshaled salvaged value for KindStructured, suitable
	// for decoding into a typed struct.
	Raw json.RawMessage
}

// Available reports whether the result carries usable output.
func (r Result) Available() bool { return r.Kind != KindUnavailable }

// placeholderPattern matches unresolved {name} template placeholders.
var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z_][a-zA-Z0-9_]*\}`)

// Invoke executes one templated call. The returned error is non-nil only
// for caller mistakes (an unresolved template placeholder); all runtime
// failures of the capability surface as a KindUnavailable Result.
func (c *Client) Invoke(ctx context.Context, spec InvokeSpec) (Result, error) {
	human, err := renderTemplate(spec.Human, spec.Vars)
	if err != nil {
		return Result{}, err
	}

	if c.provider == nil {
		return Result{Kind: KindUnavailable}, nil
	}

	if spec.Purpose != "" {
		ctx = WithPurpose(ctx, spec.Purpose)
	}

	req := Request{
		System:      spec.System,
		Messages:    []Message{{Role: RoleUser, Content: human}},
		MaxTokens:   spec.MaxTokens,
		Temperature: spec.Temperature,
	}
	if spec.Structured {
		req.Schema = spec.Schema
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("purpose", spec.Purpose).Msg("LLM call failed")
		return Result{Kind: KindUnavailable}, nil
	}

	text := strings.TrimSpace(string(resp.Content))
	if !spec.Structured {
		if text == "" {
			return Result{Kind: KindUnavailable}, nil
		}
		return Result{Kind: KindText, Text: text}, nil
	}

	value, ok := salvage.Parse(text)
	if !ok {
		return Result{Kind: KindUnavailable}, nil
	}

	if verr := validateValue(spec.Schema, value); verr != nil {
		log.Warn().Err(verr).Str("purpose", spec.Purpose).Msg("salvaged value failed schema validation")
		return Result{Kind: KindUnavailable}, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return Result{Kind: KindUnavailable}, nil
	}

	return Result{Kind: KindStructured, Value: value, Raw: raw}, nil
}

// renderTemplate substitutes {name} placeholders from vars. A var that
// matches no placeholder and an unresolved placeholder are both caller
// mistakes and return an error.
func renderTemplate(tmpl string, vars map[string]string) (string, error) {
	out := tmpl
	for k, v := range vars {
		ph := "{" + k + "}"
		if !strings.Contains(tmpl, ph) {
			return "", fmt.Errorf("template variable %q matches no placeholder", k)
		}
		out = strings.ReplaceAll(out, ph, v)
	}
	if m := placeholderPattern.FindString(out); m != "" {
		return "", fmt.Errorf("unresolved template placeholder %s", m)
	}
	return out, nil
}
