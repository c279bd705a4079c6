package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gymdesk/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recTracer struct {
	mu  sync.Mutex
	evs []pg.QueryEvent
}

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) {
	r.mu.Lock()
	r.evs = append(r.evs, ev)
	r.mu.Unlock()
}

type scanRow struct{ err error }

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int)) = 7
	return nil
}

type memberRows struct {
	names []string
	i     int
}

func (r *memberRows) Close()                        {}
func (r *memberRows) Err() error                    { return nil }
func (r *memberRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT 2") }
func (r *memberRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "first_name"}}
}
func (r *memberRows) Next() bool             { r.i++; return r.i <= len(r.names) }
func (r *memberRows) Values() ([]any, error) { return []any{r.names[r.i-1]}, nil }
func (r *memberRows) RawValues() [][]byte    { return nil }
func (r *memberRows) Conn() *pgx.Conn        { return nil }
func (r *memberRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.names[r.i-1]
	return nil
}

type fakePgx struct {
	execErr  error
	queryErr error
	rowErr   error
}

func (f fakePgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 3"), f.execErr
}

func (f fakePgx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &memberRows{names: []string{"Ana", "Ben"}}, nil
}

func (f fakePgx) QueryRow(context.Context, string, ...any) pgx.Row { return scanRow{err: f.rowErr} }

func TestTraced_ReportsEveryStatement(t *testing.T) {
	t.Parallel()
	rec := &recTracer{}
	q := traced{q: fakePgx{}, trace: queryTrace{tracer: rec, slowUS: 0}}
	ctx := context.Background()

	ct, err := q.Exec(ctx, "update members set is_active = false where end_date < $1", "2024-01-01")
	if err != nil || ct.RowsAffected() != 3 || ct.String() != "UPDATE 3" {
		t.Fatalf("exec got %v %v", ct, err)
	}

	rs, err := q.Query(ctx, "select first_name from members")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 1 || cols[0] != "first_name" {
		t.Fatalf("columns %v", cols)
	}
	var names []string
	for rs.Next() {
		var n string
		if err := rs.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, n)
	}
	rs.Close()
	if len(names) != 2 || names[1] != "Ben" {
		t.Fatalf("names %v", names)
	}

	var n int
	if err := q.QueryRow(ctx, "select count(*) from members").Scan(&n); err != nil || n != 7 {
		t.Fatalf("query row got %d %v", n, err)
	}

	if len(rec.evs) != 3 {
		t.Fatalf("want 3 trace events, got %d", len(rec.evs))
	}
	for _, ev := range rec.evs {
		if !ev.Slow {
			t.Fatalf("slow threshold 0 should mark %q slow", ev.SQL)
		}
	}
	if rec.evs[0].Args[0] != "2024-01-01" {
		t.Fatalf("args not forwarded: %v", rec.evs[0].Args)
	}
}

func TestTraced_Errors(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	rec := &recTracer{}
	ctx := context.Background()

	q := traced{q: fakePgx{execErr: boom, queryErr: boom, rowErr: pgx.ErrNoRows}, trace: queryTrace{tracer: rec, slowUS: -1}}
	if _, err := q.Exec(ctx, "delete from gym_checkins"); !errors.Is(err, boom) {
		t.Fatalf("exec err %v", err)
	}
	if rs, err := q.Query(ctx, "select 1"); rs != nil || !errors.Is(err, boom) {
		t.Fatalf("query got %v %v", rs, err)
	}
	var n int
	if err := q.QueryRow(ctx, "select id from members where member_id = $1", "ZZZZZZ").Scan(&n); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("row err %v", err)
	}

	if len(rec.evs) != 3 {
		t.Fatalf("want 3 events, got %d", len(rec.evs))
	}
	if rec.evs[0].Err == nil || rec.evs[1].Err == nil {
		t.Fatalf("failed statements must carry their error")
	}
	if rec.evs[2].Err != nil {
		t.Fatalf("no rows is not a statement failure, got %v", rec.evs[2].Err)
	}
	for _, ev := range rec.evs {
		if ev.Slow {
			t.Fatalf("negative threshold disables slow marking")
		}
	}
}

func TestQueryTrace_NilTracerIsSilent(t *testing.T) {
	t.Parallel()
	q := traced{q: fakePgx{}}
	if _, err := q.Exec(context.Background(), "select 1"); err != nil {
		t.Fatalf("exec: %v", err)
	}
}

func TestPGAdapter_NilPing(t *testing.T) {
	t.Parallel()
	var a *pgAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from nil adapter")
	}
}
