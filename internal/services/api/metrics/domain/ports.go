package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Chart(ctx context.Context, q ChartQuery) (Chart, error)
	Catalog() Catalog
}
