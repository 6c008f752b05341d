package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	routeTagKey  contextKey = "route_tag"
)

// GenerateRequestID generates a unique request ID in format "req-XXXXXX"
func GenerateRequestID() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "req-000000"
	}
	return "req-" + hex.EncodeToString(b)
}

// ExtractRouteTag extracts a short tag from an API path
// For /api/v1/encrypt -> "encrypt"
// For /api/v1/ciphers/hill -> "ciphers"
// For /health -> "health"
func ExtractRouteTag(urlPath string) string {
	path := strings.TrimPrefix(urlPath, "/api/v1")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "/"
	}
	return parts[0]
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithRouteTag adds route tag to context
func WithRouteTag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, routeTagKey, tag)
}

// GetRouteTag retrieves route tag from context
func GetRouteTag(ctx context.Context) string {
	if v, ok := ctx.Value(routeTagKey).(string); ok {
		return v
	}
	return ""
}

// Logger returns the global logger annotated with the request ID and route
func Logger(ctx context.Context) zerolog.Logger {
	l := log.With()
	if id := GetRequestID(ctx); id != "" {
		l = l.Str("req_id", id)
	}
	if tag := GetRouteTag(ctx); tag != "" {
		l = l.Str("route", tag)
	}
	return l.Logger()
}

// LogPrefix returns a formatted log prefix: "[req-xxx] [route] [op]"
func LogPrefix(ctx context.Context, operation string) string {
	reqID := GetRequestID(ctx)
	tag := GetRouteTag(ctx)
	if reqID == "" {
		reqID = "req-??????"
	}
	if tag == "" {
		tag = "/"
	}
	return "[" + reqID + "] [" + tag + "] [" + operation + "]"
}
