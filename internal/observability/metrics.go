package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	agendaRequestsTotal  *prometheus.CounterVec
	agendaLatencySeconds *prometheus.HistogramVec
	agendaErrorsTotal    *prometheus.CounterVec
	activityStatesTotal  *prometheus.CounterVec
	alertsPublishedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors of the agenda API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		agendaRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agenda_requests_total",
			Help: "Total number of agenda API requests served.",
		}, []string{"method", "route", "status"})

		agendaLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agenda_latency_seconds",
			Help:    "Latency distribution for agenda API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		agendaErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agenda_errors_total",
			Help: "Total number of error responses returned by agenda endpoints.",
		}, []string{"method", "route", "status"})

		activityStatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agenda_activity_states_total",
			Help: "Activity states computed by the agenda engine.",
		}, []string{"state"})

		alertsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agenda_alerts_published_total",
			Help: "Agenda alerts published to the broker.",
		}, []string{"kind"})

		prometheus.MustRegister(agendaRequestsTotal, agendaLatencySeconds, agendaErrorsTotal, activityStatesTotal, alertsPublishedTotal)
	})
}

// AgendaRequests exposes the counter for agenda requests.
func AgendaRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return agendaRequestsTotal
}

// AgendaLatency exposes the latency histogram for agenda requests.
func AgendaLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return agendaLatencySeconds
}

// AgendaErrors exposes the counter for agenda error responses.
func AgendaErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return agendaErrorsTotal
}

// ActivityStates counts evaluated activities per state.
func ActivityStates() *prometheus.CounterVec {
	RegisterMetrics()
	return activityStatesTotal
}

// AlertsPublished counts published alerts per kind.
func AlertsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return alertsPublishedTotal
}
