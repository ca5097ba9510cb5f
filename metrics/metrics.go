// Package metrics exposes the service's Prometheus collectors. All
// collectors are registered on the registry the embedder supplies, so the
// package never touches the global default registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every collector the auth service emits. A nil *Metrics is
// accepted everywhere and disables instrumentation.
type Metrics struct {
	LoginsTotal     *prometheus.CounterVec
	RefreshesTotal  *prometheus.CounterVec
	LogoutsTotal    prometheus.Counter
	SessionsActive  prometheus.Gauge
	SessionsSwept   prometheus.Counter
	AuthzDenials    prometheus.Counter
}

// Outcome label values for LoginsTotal and RefreshesTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authcore_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		RefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authcore_refreshes_total",
				Help: "Session refresh attempts by outcome",
			},
			[]string{"outcome"},
		),
		LogoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authcore_logouts_total",
				Help: "Logout calls, including no-ops on unknown tokens",
			},
		),
		SessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "authcore_sessions_active",
				Help: "Live sessions in the store, expired-but-unswept included",
			},
		),
		SessionsSwept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authcore_sessions_swept_total",
				Help: "Expired sessions removed by the janitor",
			},
		),
		AuthzDenials: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authcore_authz_denials_total",
				Help: "Authorization checks failed for missing roles",
			},
		),
	}

	reg.MustRegister(
		m.LoginsTotal,
		m.RefreshesTotal,
		m.LogoutsTotal,
		m.SessionsActive,
		m.SessionsSwept,
		m.AuthzDenials,
	)

	return m
}

// Login records one login attempt.
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

// Refresh records one refresh attempt.
func (m *Metrics) Refresh(outcome string) {
	if m == nil {
		return
	}
	m.RefreshesTotal.WithLabelValues(outcome).Inc()
}

// Logout records one logout call.
func (m *Metrics) Logout() {
	if m == nil {
		return
	}
	m.LogoutsTotal.Inc()
}

// SetActiveSessions updates the live-session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.SessionsActive.Set(float64(n))
}

// Swept records expired sessions removed in one sweep.
func (m *Metrics) Swept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsSwept.Add(float64(n))
}

// Denied records one authorization denial.
func (m *Metrics) Denied() {
	if m == nil {
		return
	}
	m.AuthzDenials.Inc()
}
