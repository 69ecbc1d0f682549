package llm

import "context"

type ctxKey int

const purposeKey ctxKey = iota

// WithPurpose labels the context with the pipeline step making the call
// (prompt-validation, topic-expansion, module-package, ...). The logging
// decorator reads it back so every stored event names its step.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label, or "unknown" for calls that
// bypassed the invocation client.
func PurposeFrom(ctx context.Context) string {
	v, ok := ctx.Value(purposeKey).(string)
	if !ok || v == "" {
		return "unknown"
	}
	return v
}
