package middleware

import (
	"net/http"
	"runtime/debug"

	perr "gymdesk/internal/platform/errors"
	pnet "gymdesk/internal/platform/net"
)

// Recover turns a handler panic into a logged 500 envelope
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			requestLogger(r.Context()).Error().
				Interface("panic", v).
				Str("route", routeOf(r)).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			pnet.WriteError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
