// Package domain holds metric types and the chart DTOs for the metrics api
package domain

// Metric names a chartable series
type Metric string

// Supported metrics
const (
	CheckIns           Metric = "check_ins"
	Revenue            Metric = "revenue"
	NewMembers         Metric = "new_members"
	ActiveMembers      Metric = "active_members"
	RetentionRate      Metric = "retention_rate"
	ChurnRate          Metric = "churn_rate"
	RevenuePerMember   Metric = "revenue_per_member"
	AvgSessionDuration Metric = "avg_session_duration"
	PaymentMethods     Metric = "payment_methods"
)

// Unit tags how a sample should be rendered
type Unit string

// Sample units
const (
	UnitCounter    Unit = "counter"
	UnitCurrency   Unit = "currency"
	UnitPercentage Unit = "percentage"
	UnitDuration   Unit = "duration"
)

// MetricInfo describes one catalog entry
type MetricInfo struct {
	Metric Metric `json:"metric" example:"check_ins"`
	Unit   Unit   `json:"unit" example:"counter"`
	Label  string `json:"label" example:"Check-ins"`
}

var catalog = []MetricInfo{
	{CheckIns, UnitCounter, "Check-ins"},
	{Revenue, UnitCurrency, "Revenue"},
	{NewMembers, UnitCounter, "New members"},
	{ActiveMembers, UnitCounter, "Active members"},
	{RetentionRate, UnitPercentage, "Retention rate"},
	{ChurnRate, UnitPercentage, "Churn rate"},
	{RevenuePerMember, UnitCurrency, "Revenue per member"},
	{AvgSessionDuration, UnitDuration, "Average session (minutes)"},
	{PaymentMethods, UnitCounter, "Payment methods"},
}

// Metrics returns the catalog in display order
func Metrics() []MetricInfo {
	out := make([]MetricInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ParseMetric resolves a keyword; blank means CheckIns
func ParseMetric(s string) (Metric, bool) {
	if s == "" {
		return CheckIns, true
	}
	for _, c := range catalog {
		if string(c.Metric) == s {
			return c.Metric, true
		}
	}
	return "", false
}

// Unit returns the rendering unit of m
func (m Metric) Unit() Unit {
	for _, c := range catalog {
		if c.Metric == m {
			return c.Unit
		}
	}
	return UnitCounter
}

// Rounded reports whether samples are rounded to 2 decimals
func (m Metric) Rounded() bool { return m.Unit() != UnitCounter }
