// Package middleware holds the HTTP middleware mounted by httpkit
package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"gymdesk/internal/platform/logger"
)

var requestLogger = logger.C

// AccessLog writes one line per request. 5xx logs at error, 4xx and requests
// slower than slow at warn. slow <= 0 turns the slow check off
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := capture(w)
			start := time.Now()
			next.ServeHTTP(cw, r)
			took := time.Since(start)

			lvl := zerolog.InfoLevel
			switch {
			case cw.status >= 500:
				lvl = zerolog.ErrorLevel
			case cw.status >= 400, slow > 0 && took >= slow:
				lvl = zerolog.WarnLevel
			}
			requestLogger(r.Context()).WithLevel(lvl).
				Str("method", r.Method).
				Str("route", routeOf(r)).
				Str("path", r.URL.Path).
				Int("status", cw.status).
				Int("bytes", cw.bytes).
				Dur("took", took).
				Msg("request")
		})
	}
}
