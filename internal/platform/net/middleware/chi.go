package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// re-exports so modules never import chi directly
var (
	RequestID       = chimw.RequestID
	RealIP          = chimw.RealIP
	NoCache         = chimw.NoCache
	RedirectSlashes = chimw.RedirectSlashes
	StripSlashes    = chimw.StripSlashes
)

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// Compress gzips and deflates responses at level
func Compress(level int) func(http.Handler) http.Handler { return chimw.Compress(level) }

// CORS allows the front desk UI origins. No origins means any origin
func CORS(origins ...string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
