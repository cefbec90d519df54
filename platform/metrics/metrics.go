// Package metrics holds the Prometheus collectors for the onboarding portal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding funnel.
type Metrics struct {
	Registry *prometheus.Registry

	DiagnosesCompleted prometheus.Counter
	DiagnosisDuration  prometheus.Histogram
	LeadsCaptured      prometheus.Counter
	AccountsCreated    prometheus.Counter
	Logins             *prometheus.CounterVec
	Transitions        *prometheus.CounterVec
	GateRedirects      *prometheus.CounterVec
}

// New creates a registry with process collectors and every portal metric
// registered on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		DiagnosesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "sst_portal_diagnoses_completed_total",
			Help: "Total number of diagnoses resolved for onboarding sessions",
		}),
		DiagnosisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sst_portal_diagnosis_wait_seconds",
			Help:    "Time between intake submission and diagnosis resolution",
			Buckets: []float64{0.5, 1, 2, 3, 5, 10, 30},
		}),
		LeadsCaptured: factory.NewCounter(prometheus.CounterOpts{
			Name: "sst_portal_leads_captured_total",
			Help: "Total number of proposals accepted",
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "sst_portal_accounts_created_total",
			Help: "Total number of client accounts created through signup",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sst_portal_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sst_portal_session_transitions_total",
			Help: "Onboarding session state transitions",
		}, []string{"from", "to"}),
		GateRedirects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sst_portal_gate_redirects_total",
			Help: "Requests redirected by a navigation gate",
		}, []string{"target"}),
	}
}

// IncrementDiagnosesCompleted records a resolved diagnosis.
func (m *Metrics) IncrementDiagnosesCompleted() {
	if m == nil {
		return
	}
	m.DiagnosesCompleted.Inc()
}

// ObserveDiagnosisWait records how long a session spent in diagnosing.
func (m *Metrics) ObserveDiagnosisWait(seconds float64) {
	if m == nil {
		return
	}
	m.DiagnosisDuration.Observe(seconds)
}

// IncrementLeadsCaptured records an accepted proposal.
func (m *Metrics) IncrementLeadsCaptured() {
	if m == nil {
		return
	}
	m.LeadsCaptured.Inc()
}

// IncrementAccountsCreated records a completed signup.
func (m *Metrics) IncrementAccountsCreated() {
	if m == nil {
		return
	}
	m.AccountsCreated.Inc()
}

// ObserveLogin records a login attempt outcome ("success" or "failure").
func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// ObserveTransition records a session state change.
func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(from, to).Inc()
}

// IncrementGateRedirect records a gated request sent elsewhere.
func (m *Metrics) IncrementGateRedirect(target string) {
	if m == nil {
		return
	}
	m.GateRedirects.WithLabelValues(target).Inc()
}
