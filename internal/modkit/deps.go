// Package modkit assembles API modules: the shared dependencies they are
// built from, the options they accept and the Base they embed
package modkit

import (
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
)

// Deps is what every module is built from. CH may be nil
type Deps struct {
	Log logger.Logger
	Cfg config.Conf // CORE_ namespace
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Location is the gym's local time zone from CORE_TIMEZONE, UTC when unset
func (d Deps) Location() *time.Location { return d.Cfg.MayLocation("TIMEZONE", time.UTC) }
