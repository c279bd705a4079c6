package middleware

import (
	"net/http"

	"gymdesk/internal/platform/logger"
	pnet "gymdesk/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	// Parse returns the staff id and role behind the request
	Parse(r *http.Request) (staffID string, role string, err error)
}

// Auth puts the caller's staff id and role on the request context and
// answers with the error envelope when p rejects the request.
// A nil port lets every request through
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, role, err := p.Parse(r)
			if err != nil {
				pnet.WriteError(w, r, err)
				return
			}
			ctx := pnet.WithRole(pnet.WithUser(r.Context(), id), role)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
