// Package domain holds staff accounts, sessions and their DTOs
package domain

import (
	"context"
	"time"
)

// Staff is a back office account
type Staff struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" example:"frontdesk"`
	Name         string    `json:"name" example:"Front Desk"`
	Email        string    `json:"email" example:"desk@example.com"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role" example:"Staff"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    *int64    `json:"created_by,omitempty"`
	DateJoined   time.Time `json:"date_joined"`
}

// IsOwner reports whether s has the owner role
func (s Staff) IsOwner() bool { return s.Role == RoleOwner }

// Session is an issued bearer token
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Staff     Staff     `json:"staff"`
}

// Principal is what a bearer token resolves to
type Principal struct {
	StaffID int64
	Role    string
}

// ServicePort is the staff and auth contract
type ServicePort interface {
	List(ctx context.Context) ([]Staff, error)
	Get(ctx context.Context, id int64) (Staff, error)
	Create(ctx context.Context, ownerID string, in CreateInput) (Staff, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Staff, error)
	Delete(ctx context.Context, id int64) error

	Login(ctx context.Context, in LoginInput) (Session, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, staffID string) (Staff, error)
	Resolve(ctx context.Context, token string) (Principal, error)
	EnsureOwner(ctx context.Context, in OwnerInput) (Staff, bool, error)
}
