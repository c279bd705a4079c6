// Package http provides http transport for metrics
package http

import (
	stdhttp "net/http"

	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/metrics/domain"
	svc "gymdesk/internal/services/api/metrics/service"
)

// Register mounts metrics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// chart series, written without the envelope
	httpkit.GetQuery[domain.ChartQuery](r, "/data", h.data)

	httpkit.Get(r, "/catalog", h.catalog)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /metrics/data Metrics metricsData
// @Summary Chart series for a metric over a period
// @Tags Metrics
// @Produce json
// @Security BearerAuth
// @Param metric query string false "Metric keyword" default(check_ins)
// @Param period query string false "Period keyword: 1d 1w 1m 3m 6m 1y 3y all" default(1m)
// @Param date_from query string false "Custom range start (YYYY-MM-DD)"
// @Param date_to query string false "Custom range end (YYYY-MM-DD)"
// @Param coarse query bool false "Four hour buckets for single day charts"
// @Success 200 {object} domain.Chart "raw chart document"
// @Router /metrics/data [get]
func (h *handlers) data(r *stdhttp.Request, q domain.ChartQuery) (any, error) {
	chart, err := h.svc.Chart(r.Context(), q)
	if err != nil {
		return nil, err
	}
	return httpkit.Raw(chart), nil
}

// swagger:route GET /metrics/catalog Metrics metricsCatalog
// @Summary Metric and period keywords
// @Tags Metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Catalog "ok"
// @Router /metrics/catalog [get]
func (h *handlers) catalog(_ *stdhttp.Request) (any, error) {
	return h.svc.Catalog(), nil
}
