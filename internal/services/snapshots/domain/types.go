// Package domain defines the active member snapshot types and ports
package domain

import (
	"context"
	"time"
)

// Snapshot is the number of members holding a live membership on Date
type Snapshot struct {
	Date        time.Time `json:"date"`
	ActiveCount int       `json:"active_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Captured reports one upsert; Created is false when an existing row was overwritten
type Captured struct {
	Snapshot
	Created bool `json:"created"`
}

// RangeResult summarizes a CaptureRange run. Last is the newest day written
type RangeResult struct {
	Created int       `json:"created"`
	Updated int       `json:"updated"`
	Skipped int       `json:"skipped"`
	Last    *Snapshot `json:"last,omitempty"`
}

// Total is created plus updated
func (r RangeResult) Total() int { return r.Created + r.Updated }

// RunnerPort is what the CLI and the scheduler drive
type RunnerPort interface {
	// Capture counts the members active on day and upserts that snapshot
	Capture(ctx context.Context, day time.Time) (Captured, error)

	// CaptureRange captures every day from..to inclusive, oldest first.
	// each is called after every day when non nil
	CaptureRange(ctx context.Context, from, to time.Time, each func(Captured)) (RangeResult, error)

	// Recent lists the newest n snapshots, newest first
	Recent(ctx context.Context, n int) ([]Snapshot, error)

	// Days returns the n day window ending today in the gym's time zone
	Days(n int) (from, to time.Time)
}

// StorageRepo is the persistence surface behind the runner
type StorageRepo interface {
	// ActiveOn counts non deleted active members whose membership covers day
	ActiveOn(ctx context.Context, day time.Time) (int, error)

	// Upsert writes the count for day and reports whether a new row was created
	Upsert(ctx context.Context, day time.Time, count int) (Captured, error)

	// Recent lists the newest n snapshots, newest first
	Recent(ctx context.Context, n int) ([]Snapshot, error)
}
