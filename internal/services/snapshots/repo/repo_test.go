package repo

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/platform/testkit/dbfake"
)

var day15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestActiveOn(t *testing.T) {
	t.Parallel()

	db := dbfake.New().OnQuery("from members", []any{42})
	n, err := NewPG().Bind(db).ActiveOn(context.Background(), day15)
	if err != nil || n != 42 {
		t.Fatalf("ActiveOn = %d, %v", n, err)
	}
	c, _ := db.Find("from members")
	if c.Args[0] != "2024-03-15" {
		t.Fatalf("args = %v", c.Args)
	}
	for _, want := range []string{"not is_deleted", "is_active", "start_date <=", "end_date >="} {
		if !db.Executed(want) {
			t.Fatalf("count query missing %q", want)
		}
	}
}

func TestUpsert(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 0, 5, 0, 0, time.UTC)
	db := dbfake.New().OnQuery("insert into active_member_snapshots", []any{day15, 42, now, false})
	c, err := NewPG().Bind(db).Upsert(context.Background(), day15, 42)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if c.Created || c.ActiveCount != 42 || !c.Date.Equal(day15) {
		t.Fatalf("Upsert = %+v", c)
	}
	call, _ := db.Find("on conflict (date)")
	if call.Args[0] != "2024-03-15" || call.Args[1] != 42 {
		t.Fatalf("args = %v", call.Args)
	}
}

func TestRecent_FloorsLimit(t *testing.T) {
	t.Parallel()

	db := dbfake.New().OnQuery("order by date desc", []any{day15, 3, day15})
	ss, err := NewPG().Bind(db).Recent(context.Background(), 0)
	if err != nil || len(ss) != 1 || ss[0].ActiveCount != 3 {
		t.Fatalf("Recent = %+v, %v", ss, err)
	}
	if c, _ := db.Find("order by date desc"); c.Args[0] != 1 {
		t.Fatalf("args = %v", c.Args)
	}
}
