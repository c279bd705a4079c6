// Package config reads settings from the environment through prefixed views,
// e.g. New().Prefix("CORE_").Prefix("SNAPSHOTS_").MayBool("SCHEDULE", false)
// reads CORE_SNAPSHOTS_SCHEDULE
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gymdesk/internal/platform/logger"
)

// Conf is a namespaced view over environment variables
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view, e.g. cfg.Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// MustString returns the value and panics through the logger when it is unset
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def when unset
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; an unparsable value logs a warning and yields def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayBool is MayInt for strconv.ParseBool values
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayDuration is MayInt for time.ParseDuration values such as 250ms or 2m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayLocation is MayInt for IANA zone names such as Asia/Manila
func (c Conf) MayLocation(key string, def *time.Location) *time.Location {
	return may(c, key, def, time.LoadLocation)
}

// MayEnum returns the value lowercased when it is one of allowed, def otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	return may(c, key, def, func(s string) (string, error) {
		s = strings.ToLower(s)
		if slices.Contains(allowed, s) {
			return s, nil
		}
		return "", fmt.Errorf("want one of %s", strings.Join(allowed, ", "))
	})
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.key(key)).
			Str("value", s).
			Interface("default", def).
			Err(err).
			Msg("invalid env value; using default")
		return def
	}
	return v
}
