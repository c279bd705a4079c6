package dbfake

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
)

func TestDB_QueryMatchesAndScans(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	db := New().OnQuery("from members", []any{int64(7), "Ana", now, nil, 12})

	got, err := store.Many(context.Background(), db, func(r store.Row) (int64, error) {
		var (
			id    int64
			name  string
			at    time.Time
			email *string
			n     int64
		)
		err := r.Scan(&id, &name, &at, &email, &n)
		if name != "Ana" || !at.Equal(now) || email != nil || n != 12 {
			t.Fatalf("scan mismatch: %s %v %v %d", name, at, email, n)
		}
		return id, err
	}, "select * from members where id = $1", 7)
	if err != nil || len(got) != 1 || got[0] != 7 {
		t.Fatalf("Many = %v, %v", got, err)
	}
	c, ok := db.Find("from members")
	if !ok || c.Args[0] != 7 {
		t.Fatalf("call not recorded: %+v", c)
	}
}

func TestDB_QueryRowMissIsNotFound(t *testing.T) {
	t.Parallel()

	var v int
	err := New().QueryRow(context.Background(), "select 1").Scan(&v)
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDB_PointerDestAllocates(t *testing.T) {
	t.Parallel()

	var s *string
	if err := Assign([]any{"x"}, []any{&s}); err != nil || s == nil || *s != "x" {
		t.Fatalf("Assign pointer: %v %v", s, err)
	}
	var f float64
	if err := Assign([]any{int64(3)}, []any{&f}); err != nil || f != 3 {
		t.Fatalf("Assign convert: %v %v", f, err)
	}
	if err := Assign([]any{"x"}, []any{&f}); err == nil {
		t.Fatalf("expected string to float error")
	}
}

func TestDB_ExecAndTx(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	db := New().OnExec("delete", 0, nil).OnExec("update", 0, boom)

	err := db.Tx(context.Background(), func(q store.RowQuerier) error {
		tag, err := q.Exec(context.Background(), "delete from x")
		if err != nil || tag.RowsAffected() != 0 {
			t.Fatalf("delete tag %v %v", tag, err)
		}
		_, err = q.Exec(context.Background(), "update x")
		return err
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if db.TxCount != 1 || !db.Executed("delete from x") {
		t.Fatalf("tx not recorded")
	}

	tag, _ := db.Exec(context.Background(), "insert into y")
	if tag.RowsAffected() != 1 {
		t.Fatalf("default exec affects one row")
	}
}
