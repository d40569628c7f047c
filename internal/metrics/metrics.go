// AngelaMos | 2026
// metrics.go

// Package metrics holds the Prometheus collectors for the HTTP layer and the
// domain services. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hours_tracker"

type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	AuthFailures    *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	EntryWrites     *prometheus.CounterVec
	ReportBuilds    prometheus.Counter
	CascadeDeleted  prometheus.Counter
	CascadeFailures prometheus.Counter
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AuthFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Rejected bearer tokens by reason.",
		}, []string{"reason"}), // reason: expired, invalid, revoked, unknown_user
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		EntryWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "time_entries",
			Name:      "writes_total",
			Help:      "Time entry mutations by operation.",
		}, []string{"op"}),
		ReportBuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "salary_builds_total",
			Help:      "Salary reports computed.",
		}),
		CascadeDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "cascade_deleted_entries_total",
			Help:      "Time entries removed because their owner was deleted.",
		}),
		CascadeFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "users",
			Name:      "cascade_failures_total",
			Help:      "User deletions whose entry cascade failed and left orphans.",
		}),
	}
}

func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.AuthFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) EntryWrite(op string) {
	if m == nil {
		return
	}
	m.EntryWrites.WithLabelValues(op).Inc()
}

func (m *Metrics) ReportBuilt() {
	if m == nil {
		return
	}
	m.ReportBuilds.Inc()
}

func (m *Metrics) Cascade(deleted int64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CascadeFailures.Inc()
		return
	}
	m.CascadeDeleted.Add(float64(deleted))
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}
