package graphql

import (
	"context"
	"net/http"
	"strings"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyLocation contextKey = "location"

// Location scope resolved from: X-Location header > __Location query param.
const (
	HeaderLocation     = "X-Location"
	QueryParamLocation = "__Location"
)

// LocationFromContext returns the location code the request is scoped to, or "".
func LocationFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyLocation).(string); ok {
		return v
	}
	return ""
}

// WithLocation attaches a location code to ctx.
func WithLocation(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, CtxKeyLocation, code)
}

// GetLocation extracts the location scope from the request.
func GetLocation(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get(HeaderLocation)); h != "" {
		return h
	}
	return strings.TrimSpace(r.URL.Query().Get(QueryParamLocation))
}
