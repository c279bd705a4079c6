package repokit_test

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/platform/testkit/dbfake"
)

func TestBindFunc(t *testing.T) {
	t.Parallel()
	db := dbfake.New()
	var got repokit.Queryer
	b := repokit.BindFunc[int](func(q repokit.Queryer) int { got = q; return 7 })

	if v := b.Bind(db); v != 7 || got != db {
		t.Fatalf("bind got %d with %v", v, got)
	}
}

func TestActorHook_StampsSessionSetting(t *testing.T) {
	t.Parallel()
	db := dbfake.New()
	tx := repokit.WithBeginHooks(db, repokit.ActorHook)

	ctx := store.WithActor(context.Background(), "42")
	err := tx.Tx(ctx, func(q repokit.Queryer) error {
		_, err := q.Exec(ctx, "update members set phone = $1 where member_id = $2", "0917", "AB12CD")
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	if len(db.Calls) != 2 {
		t.Fatalf("want hook + update, got %+v", db.Calls)
	}
	c := db.Calls[0]
	if c.Args[0] != repokit.ActorSetting || c.Args[1] != "42" {
		t.Fatalf("hook args %v", c.Args)
	}
}

func TestActorHook_NoActorNoStatement(t *testing.T) {
	t.Parallel()
	db := dbfake.New()
	tx := repokit.WithBeginHooks(db, repokit.ActorHook)

	if err := tx.Tx(context.Background(), func(repokit.Queryer) error { return nil }); err != nil {
		t.Fatalf("tx: %v", err)
	}
	if db.Executed("set_config") {
		t.Fatalf("set_config issued without an actor")
	}
}

func TestWithBeginHooks_HookErrorSkipsFn(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	ran := false
	tx := repokit.WithBeginHooks(dbfake.New(), func(context.Context, repokit.Queryer) error { return boom })

	err := tx.Tx(context.Background(), func(repokit.Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err %v ran %v", err, ran)
	}
}

func TestWithBeginHooks_PassThrough(t *testing.T) {
	t.Parallel()
	db := dbfake.New().OnQuery("from members", []any{3})
	tx := repokit.WithBeginHooks(db, repokit.ActorHook)
	ctx := store.WithActor(context.Background(), "1")

	var n int
	if err := tx.QueryRow(ctx, "select count(*) from members").Scan(&n); err != nil || n != 3 {
		t.Fatalf("query row got %d %v", n, err)
	}
	if _, err := tx.Query(ctx, "select id from members"); err != nil {
		t.Fatalf("query: %v", err)
	}
	if _, err := tx.Exec(ctx, "delete from gym_checkins where id = 1"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if db.Executed("set_config") {
		t.Fatalf("hooks only run inside Tx")
	}
	if p, ok := tx.(interface{ Ping(context.Context) error }); !ok || p.Ping(ctx) != nil {
		t.Fatalf("hooked runner should answer Ping")
	}
}
