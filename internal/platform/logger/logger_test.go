package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" INFO ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.DebugLevel,
		"loud":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "json", Service: "front-desk", Writer: &buf})

	l.Debug().Msg("dropped")
	l.Info().Str("member_id", "m-1").Msg("checked in")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line got %d: %q", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev["service"] != "front-desk" || ev["member_id"] != "m-1" || ev["message"] != "checked in" {
		t.Fatalf("event = %v", ev)
	}
}

func TestC_AttachesRequestIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Format: "json", Writer: &buf})
	if Get() == nil {
		t.Fatalf("root not installed")
	}
	// Init may already have run from another test; log through a fresh root
	l := New(Options{Format: "json", Writer: &buf})
	root.Store(&l)

	ctx := WithRequest(context.Background(), "req-9", "staff-3")
	C(ctx).Info().Msg("payment recorded")
	Named("snapshots").Info().Msg("captured")
	C(context.Background()).Info().Msg("bare")

	out := buf.String()
	for _, want := range []string{`"request_id":"req-9"`, `"staff_id":"staff-3"`, `"component":"snapshots"`, `"bare"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "4")
	t.Setenv("LOG_FILE", "/var/log/gymdesk/api.log")
	t.Setenv("LOG_FILE_MAX_MB", "10")
	t.Setenv("LOG_FILE_COMPRESS", "no")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || !opt.Caller || opt.SampleEvery != 4 {
		t.Fatalf("opts = %+v", opt)
	}
	if opt.Service != "gymdesk" {
		t.Fatalf("service default = %q", opt.Service)
	}
	f := opt.File
	if f.Path != "/var/log/gymdesk/api.log" || f.MaxSizeMB != 10 || f.Compress || f.MaxBackups != 5 || f.MaxAgeDays != 14 {
		t.Fatalf("file opts = %+v", f)
	}
}

func TestNew_TeesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "desk.log")
	var console bytes.Buffer
	l := New(Options{Writer: &console, File: FileOptions{Path: path, MaxSizeMB: 1}})
	l.Info().Msg("closing till")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `"message":"closing till"`) {
		t.Fatalf("file = %q", b)
	}
	if !strings.Contains(console.String(), "closing till") {
		t.Fatalf("console = %q", console.String())
	}
	if fileWriter(FileOptions{Path: " "}) != nil {
		t.Fatalf("blank path built a writer")
	}
}
