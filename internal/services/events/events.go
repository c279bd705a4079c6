// Package events mirrors front desk activity to an analytics sink.
// Publishing is best effort and never fails the request that caused it
package events

import (
	"context"
	"time"

	"gymdesk/internal/platform/logger"
)

// Kind names what happened
type Kind string

// Event kinds
const (
	CheckIn  Kind = "check_in"
	CheckOut Kind = "check_out"
	Payment  Kind = "payment"
)

// Event is one mirrored activity row
type Event struct {
	Kind       Kind
	MemberID   string
	Amount     float64
	Method     string
	OccurredAt time.Time
}

// Sink receives events
type Sink interface {
	Publish(ctx context.Context, evs ...Event) error
}

// Noop drops every event; used when ClickHouse is disabled
type Noop struct{}

// Publish discards evs
func (Noop) Publish(context.Context, ...Event) error { return nil }

// publishTimeout bounds how long a request waits on the sink
const publishTimeout = 2 * time.Second

// Emit publishes evs and logs failures instead of returning them.
// A nil sink is treated as Noop
func Emit(ctx context.Context, s Sink, evs ...Event) {
	if s == nil || len(evs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.Publish(ctx, evs...); err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("kind", string(evs[0].Kind)).
			Int("events", len(evs)).
			Msg("events: publish failed")
	}
}
