package audit

import "context"

type requestIDKey struct{}

// WithRequestID tags ctx so events raised further down can be correlated
// with the access log line.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
