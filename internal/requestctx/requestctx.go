// Package requestctx carries the request id from the HTTP edge into domain
// code without the domain importing transport packages.
package requestctx

import "context"

type requestIDKey struct{}

// WithRequestID returns ctx unchanged when id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
