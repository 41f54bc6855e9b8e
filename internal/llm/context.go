package llm

import "context"

type ctxKey int

const (
	ctxPurpose ctxKey = iota
	ctxAttempt
)

// WithPurpose labels LLM calls made under ctx, e.g. "quiz-feedback".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, ctxPurpose, purpose)
}

// PurposeFrom returns the purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(ctxPurpose).(string); ok {
		return p
	}
	return "unknown"
}

// WithAttemptID links LLM calls made under ctx to a stored quiz attempt.
// An empty id leaves ctx unchanged.
func WithAttemptID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxAttempt, id)
}

// AttemptIDFrom returns the attempt ID, or "".
func AttemptIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxAttempt).(string)
	return id
}
