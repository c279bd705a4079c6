package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName is reported to backends that accept a client name, e.g. "api"
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures the optional clickhouse event mirror
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
	// Compression is the native protocol block codec: none, lz4 or zstd
	Compression string
}
