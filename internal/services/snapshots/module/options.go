package module

import (
	"gymdesk/internal/platform/config"
	"gymdesk/internal/services/snapshots/service"
)

// Options for the snapshots module
type Options struct {
	Schedule     bool
	Cron         string
	EnableLeases bool
}

// FromConfig fills options from environment
// CORE_SNAPSHOTS_SCHEDULE (default false) runs the daily capture inside the API process
// CORE_SNAPSHOTS_CRON (default "5 0 * * *") is the five field cron spec in the gym's time zone
// CORE_SNAPSHOTS_LEASES (default true) takes a per day advisory lock around each capture
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("SNAPSHOTS_")
	return Options{
		Schedule:     n.MayBool("SCHEDULE", false),
		Cron:         n.MayString("CRON", service.DefaultSpec),
		EnableLeases: n.MayBool("LEASES", true),
	}
}
