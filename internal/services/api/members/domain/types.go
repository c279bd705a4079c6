// Package domain holds the member records and DTOs for the members service
package domain

import (
	"time"

	"gymdesk/internal/core/membership"
)

// Sex values accepted on a member record
const (
	Male   = "Male"
	Female = "Female"
)

// Member is one gym member as stored
type Member struct {
	ID               int64      `json:"id"`
	MemberID         string     `json:"member_id" example:"GYM4K2Q9ZP"`
	Name             string     `json:"name" example:"Juan Dela Cruz"`
	Email            *string    `json:"email,omitempty" example:"juan@example.com"`
	Phone            string     `json:"phone" example:"09171234567"`
	Sex              string     `json:"sex" example:"Male"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	EmergencyPhone   string     `json:"emergency_phone"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	MembershipFee    float64    `json:"membership_fee" example:"500"`
	IsActive         bool       `json:"is_active"`
	IsDeleted        bool       `json:"-"`
	DeletedAt        *time.Time `json:"-"`
	CreatedBy        *int64     `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// View is a member plus its status computed against today
type View struct {
	Member
	Status   membership.Status `json:"status" example:"active"`
	DaysLeft int               `json:"days_left" example:"12"`
}

// ViewOf computes the status of m on today
func ViewOf(m Member, today time.Time) View {
	return View{
		Member:   m,
		Status:   membership.StatusOf(m.IsActive, m.EndDate, today),
		DaysLeft: membership.DaysLeft(m.EndDate, today),
	}
}

// Totals counts members by status for the list header
type Totals struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// Add counts one member. Expiring members also count as active
func (t *Totals) Add(s membership.Status) {
	t.Total++
	switch s {
	case membership.Active:
		t.Active++
	case membership.Expiring:
		t.Active++
		t.Expiring++
	case membership.Expired:
		t.Expired++
	}
}

// Hit is one member search result
type Hit struct {
	ID          int64             `json:"id"`
	MemberID    string            `json:"member_id"`
	Name        string            `json:"name"`
	Email       *string           `json:"email,omitempty"`
	Status      membership.Status `json:"status"`
	EndDate     time.Time         `json:"end_date"`
	IsCheckedIn bool              `json:"is_checked_in"`
}
