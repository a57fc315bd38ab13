package llm

import "context"

type purposeKey struct{}

// WithPurpose attaches a purpose label ("tutor", "judge", "analysis",
// "summary") to the context for request auditing.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok {
		return p
	}
	return "unknown"
}
