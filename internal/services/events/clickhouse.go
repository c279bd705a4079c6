package events

import (
	"context"
	"errors"

	"gymdesk/internal/platform/store"
)

// Table is the ClickHouse table events land in
const Table = "gym_events"

// TableDDL creates Table when missing
const TableDDL = `
CREATE TABLE IF NOT EXISTS gym_events (
    kind        LowCardinality(String),
    member_id   String,
    amount      Float64,
    method      LowCardinality(String),
    occurred_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
PARTITION BY toYYYYMM(occurred_at)
ORDER BY (kind, occurred_at)`

// CHSink batches events into ClickHouse
type CHSink struct {
	ch store.Clickhouse
}

// NewCHSink returns a sink over an open ClickHouse seam
func NewCHSink(ch store.Clickhouse) *CHSink { return &CHSink{ch: ch} }

// EnsureTable applies TableDDL
func (s *CHSink) EnsureTable(ctx context.Context) error {
	if s == nil || s.ch == nil {
		return errors.New("events: nil clickhouse")
	}
	return s.ch.Exec(ctx, TableDDL)
}

// Publish appends evs as one batch in table column order
func (s *CHSink) Publish(ctx context.Context, evs ...Event) error {
	if s == nil || s.ch == nil {
		return errors.New("events: nil clickhouse")
	}
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, len(evs))
	for i, e := range evs {
		rows[i] = []any{string(e.Kind), e.MemberID, e.Amount, e.Method, e.OccurredAt.UTC()}
	}
	return s.ch.Insert(ctx, Table, rows)
}

// FromStore picks the ClickHouse sink when the store has one, else Noop
func FromStore(st *store.Store) Sink {
	if st == nil || st.CH == nil {
		return Noop{}
	}
	return NewCHSink(st.CH)
}
