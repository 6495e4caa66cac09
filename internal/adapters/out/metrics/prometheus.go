package metrics

import (
	"strconv"

	"storefront/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

var _ ports.FulfilmentMetrics = (*Prometheus)(nil)

// Prometheus records fulfilment counters in a prometheus registry.
type Prometheus struct {
	ordersPlaced        prometheus.Counter
	orderBrands         prometheus.Histogram
	transitions         *prometheus.CounterVec
	transitionConflicts prometheus.Counter
	ledger              *prometheus.CounterVec
	notifications       *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total number of placed orders.",
		}),
		orderBrands: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "brands_per_order",
			Help:      "Number of delivery groups per placed order.",
			Buckets:   []float64{1, 2, 3, 4, 6, 10},
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Line status transition requests by target status and whether anything changed.",
		}, []string{"target", "changed"}),
		transitionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "transition_conflicts_total",
			Help:      "Transitions retried after a concurrent modification of the order.",
		}),
		ledger: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "ledger_updates_total",
			Help:      "Inventory ledger writes by kind (decrement, sale).",
		}, []string{"kind"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Notification send attempts by kind and result.",
		}, []string{"kind", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.ordersPlaced, m.orderBrands, m.transitions, m.transitionConflicts, m.ledger, m.notifications,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Prometheus) OrderPlaced(brandCount int) {
	m.ordersPlaced.Inc()
	m.orderBrands.Observe(float64(brandCount))
}

func (m *Prometheus) TransitionApplied(target string, changed bool) {
	m.transitions.WithLabelValues(target, strconv.FormatBool(changed)).Inc()
}

func (m *Prometheus) TransitionConflict() {
	m.transitionConflicts.Inc()
}

func (m *Prometheus) LedgerApplied(kind string) {
	m.ledger.WithLabelValues(kind).Inc()
}

func (m *Prometheus) NotificationSent(kind string, ok bool) {
	result := "failed"
	if ok {
		result = "sent"
	}
	m.notifications.WithLabelValues(kind, result).Inc()
}
