// Package http serves the meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/core/version"
	"gymdesk/internal/modkit/httpkit"
)

// readyTimeout bounds the dependency pings of one readiness probe
const readyTimeout = 2 * time.Second

// Check is one readiness dependency. A nil Ping reports it skipped
type Check struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Location    *time.Location
	Checks      []Check
	// Modules lists the registered module names
	Modules func() []string
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Location == nil {
		d.Location = time.UTC
	}
	h := &handlers{Deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/clock", h.clock)
}

type handlers struct{ Deps }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"gymdesk-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// CheckResult is the outcome of one readiness check: ok, fail or skipped
type CheckResult struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok when every check passed, fail when any failed and
// degraded when some were skipped
type ReadyResponse struct {
	Status string        `json:"status" example:"ok"`
	Checks []CheckResult `json:"checks"`
	Now    string        `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is the process summary
type ServiceResponse struct {
	Name    string   `json:"name"    example:"gymdesk-api"`
	Started string   `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules"`
}

// ClockResponse is the gym's local time, used by clients to label days
// the way the server buckets them
type ClockResponse struct {
	TimeZone string `json:"time_zone" example:"Asia/Manila"`
	Now      string `json:"now"       example:"2025-09-03T21:05:00+08:00"`
	Today    string `json:"today"     example:"2025-09-03"`
	Offset   int    `json:"offset"    example:"28800"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]CheckResult, 0, len(h.Checks))}
	for _, c := range h.Checks {
		res := CheckResult{Name: c.Name, Status: "ok"}
		switch {
		case c.Ping == nil:
			res.Status = "skipped"
			if out.Status == "ok" {
				out.Status = "degraded"
			}
		default:
			if err := c.Ping(ctx); err != nil {
				res.Status, res.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, res)
	}
	out.Now = stamp(time.Now())
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	out := ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
		Modules: []string{},
	}
	if h.Modules != nil {
		out.Modules = h.Modules()
	}
	return out, nil
}

// @Summary The gym's time zone and local date
// @Tags Meta
// @Produce json
// @Success 200 {object} ClockResponse
// @Router /meta/clock [get]
func (h *handlers) clock(*http.Request) (any, error) {
	now := time.Now().In(h.Location)
	_, off := now.Zone()
	return ClockResponse{
		TimeZone: h.Location.String(),
		Now:      now.Format(time.RFC3339),
		Today:    now.Format(time.DateOnly),
		Offset:   off,
	}, nil
}
