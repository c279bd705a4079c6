package config

import (
	"testing"
	"time"

	"gymdesk/internal/platform/testkit"
)

func TestPrefix(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("SNAPSHOTS_")
	if got := c.key("CRON"); got != "CORE_SNAPSHOTS_CRON" {
		t.Fatalf("key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://desk@db/gymdesk  ")
	if got := c.MustString("DBURL"); got != "postgres://desk@db/gymdesk" {
		t.Fatalf("got %q", got)
	}

	t.Setenv("SERVICE_PGSQL_BLANK", "   ")
	testkit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	testkit.MustPanic(t, func() { _ = c.MustString("UNSET_FOR_TEST") })
}

func TestMay(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_NAME", "front-desk")
	t.Setenv("CORE_API_PORT", "4000")
	t.Setenv("CORE_API_BAD_PORT", "forty")
	t.Setenv("CORE_API_PROFILER", "true")
	t.Setenv("CORE_API_BAD_BOOL", "maybe")
	t.Setenv("CORE_API_TIMEOUT", "45s")
	t.Setenv("CORE_API_BAD_TIMEOUT", "soon")

	if got := c.MayString("NAME", "x"); got != "front-desk" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MISSING", "x"); got != "x" {
		t.Fatalf("MayString default = %q", got)
	}

	ints := map[string]int{"PORT": 4000, "BAD_PORT": 8080, "MISSING": 8080}
	for k, want := range ints {
		if got := c.MayInt(k, 8080); got != want {
			t.Fatalf("MayInt(%s) = %d want %d", k, got, want)
		}
	}

	if !c.MayBool("PROFILER", false) || c.MayBool("BAD_BOOL", false) || !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool mismatch")
	}

	t.Setenv("CORE_API_CODEC", "ZSTD")
	t.Setenv("CORE_API_BAD_CODEC", "snappy")
	enums := map[string]string{"CODEC": "zstd", "BAD_CODEC": "lz4", "MISSING": "lz4"}
	for k, want := range enums {
		if got := c.MayEnum(k, "lz4", "none", "lz4", "zstd"); got != want {
			t.Fatalf("MayEnum(%s) = %q want %q", k, got, want)
		}
	}

	durs := map[string]time.Duration{"TIMEOUT": 45 * time.Second, "BAD_TIMEOUT": time.Second, "MISSING": time.Second}
	for k, want := range durs {
		if got := c.MayDuration(k, time.Second); got != want {
			t.Fatalf("MayDuration(%s) = %v want %v", k, got, want)
		}
	}
}
