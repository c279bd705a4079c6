package ch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type fakeBatch struct {
	rows    [][]any
	failAt  int
	sent    bool
	aborted bool
}

func (b *fakeBatch) Append(v ...any) error {
	if b.failAt > 0 && len(b.rows)+1 == b.failAt {
		return errors.New("bad column")
	}
	b.rows = append(b.rows, v)
	return nil
}
func (b *fakeBatch) Send() error  { b.sent = true; return nil }
func (b *fakeBatch) Abort() error { b.aborted = true; return nil }

type fakeSession struct {
	pingErr  error
	prepared string
	batch    *fakeBatch
	closed   bool
}

func (f *fakeSession) Ping(context.Context) error                          { return f.pingErr }
func (f *fakeSession) Exec(context.Context, string, ...any) error          { return nil }
func (f *fakeSession) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeSession) Prepare(_ context.Context, q string) (batch, error) {
	f.prepared = q
	return f.batch, nil
}
func (f *fakeSession) Close() error { f.closed = true; return nil }

func TestOptions_ParsesDSNAndStampsClientInfo(t *testing.T) {
	t.Parallel()

	o, err := Options(Config{URL: "clickhouse://default:@127.0.0.1:9000/gym", Role: "api"})
	if err != nil {
		t.Fatalf("Options err: %v", err)
	}
	if o.Auth.Database != "gym" {
		t.Fatalf("database = %q", o.Auth.Database)
	}
	var sawRole bool
	for _, p := range o.ClientInfo.Products {
		if p.Name == "role" && p.Version == "api" {
			sawRole = true
		}
	}
	if !sawRole {
		t.Fatalf("client info missing role: %+v", o.ClientInfo.Products)
	}
}

func TestOptions_Compression(t *testing.T) {
	t.Parallel()

	const dsn = "clickhouse://127.0.0.1:9000/gym"
	o, err := Options(Config{URL: dsn, Compression: "zstd"})
	if err != nil || o.Compression == nil || o.Compression.Method != clickhouse.CompressionZSTD {
		t.Fatalf("zstd options = %+v, %v", o.Compression, err)
	}
	if _, err := Options(Config{URL: dsn, Compression: "snappy"}); err == nil {
		t.Fatalf("unknown codec accepted")
	}
}

func TestOptions_RejectsEmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := Options(Config{}); err == nil {
		t.Fatalf("expected error for empty URL")
	}
}

// not parallel: swaps the openConn seam
func TestOpen_PingFailureCloses(t *testing.T) {
	fs := &fakeSession{pingErr: errors.New("refused")}
	prev := openConn
	openConn = func(*clickhouse.Options) (session, error) { return fs, nil }
	t.Cleanup(func() { openConn = prev })

	_, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:9000/gym"})
	if err == nil || !strings.Contains(err.Error(), "ping") {
		t.Fatalf("expected ping error, got %v", err)
	}
	if !fs.closed {
		t.Fatalf("session not closed after failed ping")
	}
}

func TestInsert_BatchesRows(t *testing.T) {
	t.Parallel()

	fb := &fakeBatch{}
	c := &CH{s: &fakeSession{batch: fb}}
	err := c.Insert(context.Background(), "gym_events", [][]any{{"check_in", "GYM0000001"}, {"payment", "GYM0000002"}})
	if err != nil {
		t.Fatalf("Insert err: %v", err)
	}
	if len(fb.rows) != 2 || !fb.sent {
		t.Fatalf("batch rows=%d sent=%v", len(fb.rows), fb.sent)
	}
}

func TestInsert_AppendErrorAborts(t *testing.T) {
	t.Parallel()

	fb := &fakeBatch{failAt: 2}
	fs := &fakeSession{batch: fb}
	c := &CH{s: fs}
	err := c.Insert(context.Background(), "gym_events", [][]any{{1}, {2}, {3}})
	if err == nil {
		t.Fatalf("expected append error")
	}
	if !fb.aborted || fb.sent {
		t.Fatalf("aborted=%v sent=%v", fb.aborted, fb.sent)
	}
	if fs.prepared != "INSERT INTO gym_events" {
		t.Fatalf("prepared %q", fs.prepared)
	}
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	fs := &fakeSession{}
	c := &CH{s: fs}
	if err := c.Insert(context.Background(), "gym_events", nil); err != nil {
		t.Fatalf("Insert err: %v", err)
	}
	if fs.prepared != "" {
		t.Fatalf("prepared on empty insert")
	}
}
