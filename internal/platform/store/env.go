package store

import (
	"time"

	"gymdesk/internal/platform/config"
)

// ConfigFrom reads backend settings from the SERVICE_PGSQL_ and SERVICE_CLICKHOUSE_ views of root.
// Postgres is always on; ClickHouse only when SERVICE_CLICKHOUSE_ENABLED is true
func ConfigFrom(root config.Conf, app string) Config {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: app,
		PG: PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}
	if chCfg.MayBool("ENABLED", false) {
		cfg.CH = CHConfig{
			Enabled:     true,
			URL:         chCfg.MustString("DBURL"),
			DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
			Compression: chCfg.MayEnum("COMPRESSION", "lz4", "none", "lz4", "zstd"),
		}
	}
	return cfg
}
