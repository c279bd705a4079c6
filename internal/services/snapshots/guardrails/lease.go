// Package guardrails keeps concurrent snapshot runners from racing on the same day
package guardrails

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/store"
)

// ErrLeaseHeld signals another runner is capturing the day already
var ErrLeaseHeld = errors.New("snapshots: day lease already held")

// leaseSpace namespaces the advisory keys ("gs" in the high bits)
const leaseSpace int64 = 0x6773 << 32

// Key derives the advisory lock key for a calendar day
func Key(day time.Time) int64 {
	y, m, d := day.Date()
	return leaseSpace | int64(y*10000+int(m)*100+d)
}

// Lease runs do inside one transaction that holds a transaction scoped
// advisory lock for day. The lock is released on commit or rollback
type Lease func(ctx context.Context, day time.Time, do func(q repokit.Queryer) error) error

// MakeLease returns a Lease backed by pg_try_advisory_xact_lock
func MakeLease(db repokit.TxRunner) Lease {
	return func(ctx context.Context, day time.Time, do func(q repokit.Queryer) error) error {
		return db.Tx(ctx, func(q store.RowQuerier) error {
			var ok bool
			if err := q.QueryRow(ctx, `select pg_try_advisory_xact_lock($1)`, Key(day)).Scan(&ok); err != nil {
				return err
			}
			if !ok {
				return ErrLeaseHeld
			}
			return do(q)
		})
	}
}

// NoLease runs do in a plain transaction
func NoLease(db repokit.TxRunner) Lease {
	return func(ctx context.Context, _ time.Time, do func(q repokit.Queryer) error) error {
		return db.Tx(ctx, do)
	}
}
