package events

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink counts events in Prometheus
type PromSink struct {
	events  *prometheus.CounterVec
	revenue *prometheus.CounterVec
}

// NewPromSink registers the activity collectors on reg
func NewPromSink(reg prometheus.Registerer, namespace string) *PromSink {
	s := &PromSink{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "desk",
			Name:      "events_total",
			Help:      "Front desk events by kind.",
		}, []string{"kind"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "desk",
			Name:      "payments_amount_total",
			Help:      "Sum of completed payment amounts by method.",
		}, []string{"method"}),
	}
	reg.MustRegister(s.events, s.revenue)
	return s
}

// Publish never fails
func (s *PromSink) Publish(_ context.Context, evs ...Event) error {
	for _, e := range evs {
		s.events.WithLabelValues(string(e.Kind)).Inc()
		if e.Kind == Payment && e.Amount > 0 {
			s.revenue.WithLabelValues(e.Method).Add(e.Amount)
		}
	}
	return nil
}

// Fanout publishes to every sink and joins their errors
type Fanout []Sink

// Publish hands evs to each non nil sink in order
func (f Fanout) Publish(ctx context.Context, evs ...Event) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, evs...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
