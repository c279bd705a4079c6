// Package membership holds the gym rules shared by members, payments and
// reporting: subscription status, renewal arithmetic and payment methods
package membership

import (
	"time"

	ptime "gymdesk/internal/platform/time"
)

// Status is the computed subscription state of a member
type Status string

// Member statuses
const (
	Active   Status = "active"
	Expiring Status = "expiring"
	Expired  Status = "expired"
	Inactive Status = "inactive"
)

// ExpiringWindow is how many days before the end date a subscription counts as expiring
const ExpiringWindow = 7

// StatusOf computes the status against today. Dates are compared as calendar days
func StatusOf(isActive bool, end, today time.Time) Status {
	left := daysUntil(today, end)
	switch {
	case left < 0:
		return Expired
	case isActive && left <= ExpiringWindow:
		return Expiring
	case isActive:
		return Active
	default:
		return Inactive
	}
}

// IsCurrent reports whether a subscription is paid up through today
func IsCurrent(isActive bool, end, today time.Time) bool {
	return isActive && daysUntil(today, end) >= 0
}

// Renewal is the new subscription window after a payment
type Renewal struct {
	Start time.Time
	End   time.Time
}

// Renew extends a current subscription by days, or starts a fresh one today
func Renew(isActive bool, start, end, today time.Time, days int) Renewal {
	if IsCurrent(isActive, end, today) {
		return Renewal{Start: start, End: end.AddDate(0, 0, days)}
	}
	return Renewal{Start: today, End: today.AddDate(0, 0, days)}
}

// DaysLeft is the number of whole days remaining through end, never negative
func DaysLeft(end, today time.Time) int {
	return max(ptime.DaysUntil(today, end), 0)
}

func daysUntil(a, b time.Time) int { return ptime.DaysUntil(a, b) }
