// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Clock reports the current instant. Services hold one so tests can pin "now"
type Clock func() time.Time

// System is the wall clock
func System() Clock { return time.Now }

// Fixed always reports t
func Fixed(t time.Time) Clock { return func() time.Time { return t } }

// In returns now in loc, falling back to UTC for a nil location
func (c Clock) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if c == nil {
		return time.Now().In(loc)
	}
	return c().In(loc)
}

// Today returns midnight of the current day in loc
func (c Clock) Today(loc *time.Location) time.Time {
	return Midnight(c.In(loc))
}

// Midnight truncates t to the start of its calendar day in its own location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntil counts calendar days from a to b, negative when b is earlier
func DaysUntil(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
