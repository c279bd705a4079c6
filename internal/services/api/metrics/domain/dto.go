package domain

import "gymdesk/internal/core/scale"

// ChartQuery is bound from the metrics data query string
type ChartQuery struct {
	Metric   string `query:"metric" json:"metric" example:"check_ins"`
	Period   string `query:"period" json:"period" example:"1m"`
	DateFrom string `query:"date_from" json:"date_from" example:"2025-08-01"`
	DateTo   string `query:"date_to" json:"date_to" example:"2025-08-31"`
	Coarse   bool   `query:"coarse" json:"coarse"`
}

// Chart is the raw chart document consumed by the dashboard charts
type Chart struct {
	Labels []string         `json:"labels"`
	Data   []float64        `json:"data"`
	Metric string           `json:"metric" example:"check_ins"`
	Period string           `json:"period" example:"1m"`
	Scale  scale.Suggestion `json:"scale"`
}

// Catalog lists what the chart endpoint accepts
type Catalog struct {
	Metrics []MetricInfo `json:"metrics"`
	Periods []string     `json:"periods"`
}
