package module

import (
	"context"
	"strconv"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/staff/domain"
)

// SessionResolver is the slice of the staff service the bearer port needs
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Principal, error)
}

// tokenFunc adapts session lookup to the httpkit bearer port
func tokenFunc(s SessionResolver) httpkit.TokenFunc {
	if s == nil {
		panic("staff: token resolver requires a non-nil SessionResolver")
	}
	return func(ctx context.Context, token string) (string, string, error) {
		p, err := s.Resolve(ctx, token)
		if err != nil {
			return "", "", err
		}
		return strconv.FormatInt(p.StaffID, 10), p.Role, nil
	}
}

// NewAuthPort builds the bearer middleware port over session lookup
func NewAuthPort(s SessionResolver) *httpkit.Port { return httpkit.NewPortFunc(tokenFunc(s)) }
