// Package logger holds the process root zerolog logger and the helpers that
// derive component and request scoped children from it
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gymdesk/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the logging type every package takes
type Logger = zerolog.Logger

// Options configures the root logger. FromEnv fills it from LOG_*
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	Caller      bool
	SampleEvery int
	// File tees JSON lines into a size rotated file when Path is set
	File FileOptions
}

// FileOptions configures the rotating file sink
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER,
// LOG_SAMPLE_EVERY and the LOG_FILE* group
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	file := env.Prefix("FILE_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", "gymdesk"),
		Caller:      env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
		File: FileOptions{
			Path:       env.Get("FILE", ""),
			MaxSizeMB:  file.GetInt("MAX_MB", 50),
			MaxBackups: file.GetInt("BACKUPS", 5),
			MaxAgeDays: file.GetInt("MAX_AGE_DAYS", 14),
			Compress:   file.GetBool("COMPRESS", true),
		},
	}
}

// New builds a logger from opt without touching the root
func New(opt Options) Logger {
	var out io.Writer = os.Stdout
	if opt.Writer != nil {
		out = opt.Writer
	}
	if opt.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if f := fileWriter(opt.File); f != nil {
		out = zerolog.MultiLevelWriter(out, f)
	}

	with := zerolog.New(out).Level(ParseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		with = with.Str("service", opt.Service)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		with = with.Str("go_version", bi.GoVersion)
	}
	if opt.Caller {
		with = with.Caller()
	}

	l := with.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// ParseLevel maps a level name onto zerolog; unknown names are debug
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

func fileWriter(f FileOptions) io.Writer {
	if strings.TrimSpace(f.Path) == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
		Compress:   f.Compress,
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init installs the root logger. Only the first call has any effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named returns a child logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	staffIDKey
)

// WithRequest stores the request and staff ids that C attaches
func WithRequest(ctx context.Context, requestID, staffID string) context.Context {
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if staffID != "" {
		ctx = context.WithValue(ctx, staffIDKey, staffID)
	}
	return ctx
}

// C returns the root logger carrying the ids stored by WithRequest
func C(ctx context.Context) *Logger {
	with := Get().With()
	if s, _ := ctx.Value(requestIDKey).(string); s != "" {
		with = with.Str("request_id", s)
	}
	if s, _ := ctx.Value(staffIDKey).(string); s != "" {
		with = with.Str("staff_id", s)
	}
	l := with.Logger()
	return &l
}
