// Package net carries request scoped identity and the JSON envelope shared by
// the HTTP layers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const (
	staffIDKey ctxKey = iota
	roleKey
)

func with(ctx context.Context, k any, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

func get(ctx context.Context, k any) string {
	v, _ := ctx.Value(k).(string)
	return v
}

// WithRequest stores a request id where chi's RequestID middleware keeps it
func WithRequest(ctx context.Context, requestID string) context.Context {
	return with(ctx, chimw.RequestIDKey, requestID)
}

// WithUser stores the authenticated staff id
func WithUser(ctx context.Context, staffID string) context.Context {
	return with(ctx, staffIDKey, staffID)
}

// WithRole stores the authenticated staff role
func WithRole(ctx context.Context, role string) context.Context {
	return with(ctx, roleKey, role)
}

// RequestID returns the request id or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID returns the authenticated staff id or ""
func UserID(ctx context.Context) string { return get(ctx, staffIDKey) }

// Role returns the authenticated staff role or ""
func Role(ctx context.Context) string { return get(ctx, roleKey) }
