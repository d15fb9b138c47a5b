package orderedbatch

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by ProcessOrdered.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	items    *prometheus.CounterVec
	groups   *prometheus.CounterVec
	inFlight prometheus.Gauge
	duration prometheus.Histogram
}

// NewMetrics creates the collectors under namespace and registers them with
// reg. A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_items_total",
				Help:      "Batch items by outcome: processed, failed or skipped.",
			},
			[]string{"outcome"},
		),
		groups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_groups_total",
				Help:      "Ordering groups by outcome: succeeded or failed.",
			},
			[]string{"outcome"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "batch_groups_in_flight",
				Help:      "Ordering groups currently running.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Wall time of one ProcessOrdered call.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	for _, c := range []prometheus.Collector{m.items, m.groups, m.inFlight, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("orderedbatch: register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) groupStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) groupFinished(processed, total int, failed bool) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.items.WithLabelValues("processed").Add(float64(processed))

	if !failed {
		m.groups.WithLabelValues("succeeded").Inc()
		return
	}
	m.groups.WithLabelValues("failed").Inc()
	m.items.WithLabelValues("failed").Inc()
	m.items.WithLabelValues("skipped").Add(float64(total - processed - 1))
}

func (m *Metrics) observeBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
