// Package metrics collects Prometheus metrics for the billing service.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons for ItemRejected.
const (
	ReasonParse      = "parse"
	ReasonValidation = "validation"
)

// Metrics holds a private registry and the billing counters.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	sessionsStarted prometheus.Counter
	sessionsExpired prometheus.Counter
	itemsAdded      prometheus.Counter
	itemsRejected   *prometheus.CounterVec
	billsRendered   prometheus.Counter
}

// New initializes the registry and billing metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retailbill_sessions_started_total",
			Help: "Billing sessions started.",
		}),
		sessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retailbill_sessions_expired_total",
			Help: "Billing sessions removed after their TTL.",
		}),
		itemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retailbill_items_added_total",
			Help: "Line items accepted onto a bill.",
		}),
		itemsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "retailbill_items_rejected_total",
			Help: "Line item submissions rejected, by reason.",
		}, []string{"reason"}),
		billsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "retailbill_bills_rendered_total",
			Help: "Bills computed and rendered.",
		}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessionsStarted,
		m.sessionsExpired,
		m.itemsAdded,
		m.itemsRejected,
		m.billsRendered,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *Metrics) SessionStarted() {
	if m != nil {
		m.sessionsStarted.Inc()
	}
}

func (m *Metrics) SessionsExpired(n int64) {
	if m != nil && n > 0 {
		m.sessionsExpired.Add(float64(n))
	}
}

func (m *Metrics) ItemAdded() {
	if m != nil {
		m.itemsAdded.Inc()
	}
}

// ItemRejected counts a rejected submission; reason is ReasonParse or
// ReasonValidation.
func (m *Metrics) ItemRejected(reason string) {
	if m != nil {
		m.itemsRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) BillRendered() {
	if m != nil {
		m.billsRendered.Inc()
	}
}
