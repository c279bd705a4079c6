package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"gymdesk/internal/platform/net/middleware"
)

// CommonStack is the middleware every API route runs through
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recover,
		middleware.NoCache,
		middleware.AccessLog(500 * time.Millisecond),
		middleware.CORS(),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes,
		middleware.StripSlashes,
		middleware.Timeout(30 * time.Second),
	}
}
