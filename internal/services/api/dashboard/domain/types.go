// Package domain holds the front desk dashboard figures
package domain

import (
	"context"
	"time"

	checkinsdomain "gymdesk/internal/services/api/checkins/domain"
)

// RecentLimit caps the recent check-in list
const RecentLimit = 10

// ExpiringDays is how far ahead the expiring list looks
const ExpiringDays = 3

// Today summarises the current local day
type Today struct {
	WalkIns  int     `json:"walk_ins"`
	CheckIns int     `json:"check_ins"`
	InGym    int     `json:"in_gym"`
	Revenue  float64 `json:"revenue"`
}

// Month summarises the current calendar month through today
type Month struct {
	CheckIns   int     `json:"check_ins"`
	Revenue    float64 `json:"revenue"`
	NewMembers int     `json:"new_members"`
}

// Expiring is a member whose subscription ends within ExpiringDays
type Expiring struct {
	MemberID string    `json:"member_id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	EndDate  time.Time `json:"end_date"`
	DaysLeft int       `json:"days_left"`
}

// PeakHour is the check-in count for one local hour of today
type PeakHour struct {
	Hour       int     `json:"hour"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RevenueDisplay carries preformatted peso strings
type RevenueDisplay struct {
	Today string `json:"today"`
	Month string `json:"month"`
}

// Stats is the dashboard payload
type Stats struct {
	AsOf           time.Time                `json:"as_of"`
	Today          Today                    `json:"today"`
	Month          Month                    `json:"month"`
	ActiveMembers  int                      `json:"active_members"`
	ExpiringSoon   []Expiring               `json:"expiring_soon"`
	RecentCheckIns []checkinsdomain.CheckIn `json:"recent_check_ins"`
	PeakHours      []PeakHour               `json:"peak_hours"`
	RevenueDisplay RevenueDisplay           `json:"revenue_display"`
}

// HourCount is a raw per hour tally
type HourCount struct {
	Hour  int
	Count int
}

// Peaks scales tallies against the busiest hour
func Peaks(hs []HourCount) []PeakHour {
	top := 0
	for _, h := range hs {
		top = max(top, h.Count)
	}
	out := make([]PeakHour, 0, len(hs))
	for _, h := range hs {
		pct := 0.0
		if top > 0 {
			pct = float64(h.Count) / float64(top) * 100
		}
		out = append(out, PeakHour{Hour: h.Hour, Count: h.Count, Percentage: pct})
	}
	return out
}

// RecentSource lists today's check-ins newest first
type RecentSource interface {
	Today(ctx context.Context) ([]checkinsdomain.CheckIn, error)
}

// ServicePort is the dashboard contract
type ServicePort interface {
	Stats(ctx context.Context) (Stats, error)
}
