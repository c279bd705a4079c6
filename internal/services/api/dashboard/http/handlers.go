// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	svc "gymdesk/internal/services/api/dashboard/service"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/stats", h.stats)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /dashboard/stats Dashboard dashboardStats
// @Summary Front desk figures for today and this month
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Stats
// @Router /dashboard/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}
