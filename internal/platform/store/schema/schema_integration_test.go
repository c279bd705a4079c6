//go:build integration_pg

package schema_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/platform/store/schema"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a disposable postgres:16-alpine and returns its DSN
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "desk",
				"POSTGRES_PASSWORD": "desk",
				"POSTGRES_DB":       "gymdesk",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://desk:desk@%s:%s/gymdesk?sslmode=disable", host, port.Port())
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "schema-test",
		PG:      store.PGConfig{Enabled: true, URL: startPostgres(t), MaxConns: 4},
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })
	return st
}

func TestApply_Integration(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	first, err := schema.Apply(ctx, st.PG)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	all, _ := schema.Migrations()
	if len(first) != len(all) {
		t.Fatalf("applied %v, want all of %d", first, len(all))
	}
	again, err := schema.Apply(ctx, st.PG)
	if err != nil || len(again) != 0 {
		t.Fatalf("second apply should be a no-op, got %v %v", again, err)
	}

	// rollback leaves nothing behind
	rollback := errors.New("rollback")
	err = st.PG.Tx(ctx, func(q store.RowQuerier) error {
		if _, err := q.Exec(ctx, `insert into members (member_id, name, sex) values ('RB0001', 'Temp', 'Male')`); err != nil {
			return err
		}
		return rollback
	})
	if !errors.Is(err, rollback) {
		t.Fatalf("tx err %v", err)
	}
	var n int
	if err := st.PG.QueryRow(ctx, `select count(*) from members`).Scan(&n); err != nil || n != 0 {
		t.Fatalf("count after rollback %d %v", n, err)
	}

	// the actor hook feeds the members trigger
	var staffID int64
	if err := st.PG.QueryRow(ctx, `
insert into staff_users (username, email, password_hash, name, role)
values ('owner', 'owner@gym.test', 'x', 'Owner', 'Owner') returning id`).Scan(&staffID); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	if _, err := st.PG.Exec(ctx, `insert into members (member_id, name, sex) values ('AB12CD', 'Ana', 'Female')`); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	hooked := repokit.WithBeginHooks(st.PG, repokit.ActorHook)
	err = store.RunAs(ctx, hooked, fmt.Sprint(staffID), func(ctx context.Context, q store.RowQuerier) error {
		_, err := q.Exec(ctx, `update members set phone = '09171234567' where member_id = 'AB12CD'`)
		return err
	})
	if err != nil {
		t.Fatalf("update as staff: %v", err)
	}
	var by *int64
	if err := st.PG.QueryRow(ctx, `select updated_by from members where member_id = 'AB12CD'`).Scan(&by); err != nil {
		t.Fatalf("read updated_by: %v", err)
	}
	if by == nil || *by != staffID {
		t.Fatalf("updated_by got %v want %d", by, staffID)
	}
}
