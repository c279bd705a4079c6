package httpkit

import (
	"context"
	"net/http"
	"strings"

	perrs "gymdesk/internal/platform/errors"
	pnet "gymdesk/internal/platform/net"
	"gymdesk/internal/platform/net/middleware"
)

// TokenFunc resolves a bearer token to the staff id and role behind it
type TokenFunc func(ctx context.Context, token string) (staffID string, role string, err error)

// Port is a middleware.AuthPort reading the Authorization header
type Port struct{ resolve TokenFunc }

// NewPortFunc builds a Port around fn
func NewPortFunc(fn TokenFunc) *Port { return &Port{resolve: fn} }

// Parse resolves the bearer token. Every failure is unauthorized
func (p *Port) Parse(r *http.Request) (string, string, error) {
	tok, err := Bearer(r)
	if err != nil {
		return "", "", err
	}
	if p.resolve == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	id, role, err := p.resolve(r.Context(), tok)
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return id, role, nil
}

// Bearer returns the token of a "Bearer <token>" Authorization header.
// The scheme is matched case insensitively
func Bearer(r *http.Request) (string, error) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	tok = strings.TrimSpace(tok)
	if !ok || !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}

// User returns the authenticated staff id
func User(r *http.Request) (string, error) {
	if id := pnet.UserID(r.Context()); id != "" {
		return id, nil
	}
	return "", perrs.Unauthorizedf("missing bearer token")
}

// Protected mounts fn's routes behind bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.Auth(p))
		fn(gr)
	})
}

// RequireRole admits only callers whose role is one of roles.
// It must run after Auth
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := checkRole(pnet.Role(r.Context()), roles); err != nil {
				pnet.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Restricted mounts fn's routes behind RequireRole
func Restricted(r Router, fn func(Router), roles ...string) {
	r.Group(func(gr Router) {
		gr.Use(RequireRole(roles...))
		fn(gr)
	})
}

func checkRole(have string, allowed []string) error {
	if have == "" {
		return perrs.Unauthorizedf("missing staff role")
	}
	for _, a := range allowed {
		if strings.EqualFold(have, a) {
			return nil
		}
	}
	return perrs.Forbiddenf("requires role %s", strings.Join(allowed, " or "))
}
