// Package domain holds check-in records and DTOs
package domain

import (
	"context"
	"time"

	membersdomain "gymdesk/internal/services/api/members/domain"
)

// CheckIn is one visit of a member
type CheckIn struct {
	ID           int64      `json:"id"`
	MemberPK     int64      `json:"-"`
	MemberID     string     `json:"member_id" example:"GYM4K2Q9ZP"`
	MemberName   string     `json:"member_name" example:"Juan Dela Cruz"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Date         time.Time  `json:"date"`
	// DurationMinutes is set once the member has checked out
	DurationMinutes *int `json:"duration_minutes,omitempty" example:"85"`
}

// WithDuration fills DurationMinutes from the check-in and check-out times
func (c CheckIn) WithDuration() CheckIn {
	if c.CheckOutTime == nil {
		c.DurationMinutes = nil
		return c
	}
	m := int(c.CheckOutTime.Sub(c.CheckInTime).Minutes())
	c.DurationMinutes = &m
	return c
}

// CheckInInput starts a visit
type CheckInInput struct {
	MemberID string `json:"member_id" validate:"required,max=20" example:"GYM4K2Q9ZP"`
}

// SearchQuery looks up members eligible to check in
type SearchQuery struct {
	Q string `query:"q" json:"q" validate:"max=100" example:"juan"`
}

// TodayLimit caps the today list
const TodayLimit = 50

// ServicePort is the check-in contract used by transport and the dashboard
type ServicePort interface {
	CheckIn(ctx context.Context, staffID string, in CheckInInput) (CheckIn, error)
	CheckOut(ctx context.Context, staffID string, id int64) (CheckIn, error)
	Today(ctx context.Context) ([]CheckIn, error)
	Search(ctx context.Context, q SearchQuery) ([]membersdomain.Hit, error)
}

// MemberSearch is the slice of the members port check-ins need
type MemberSearch interface {
	Search(ctx context.Context, q membersdomain.SearchQuery) ([]membersdomain.Hit, error)
}
