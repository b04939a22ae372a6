// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_sessions_total",
		Help: "Finished workflow sessions by terminal state and reason",
	}, []string{"state", "reason"})

	sessionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "statusbot_session_duration_seconds",
		Help:    "Wall time from command invocation to terminal state",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 240},
	}, []string{"state"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statusbot_sessions_active",
		Help: "Workflow sessions currently in flight",
	})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_transitions_total",
		Help: "Workflow state transitions",
	}, []string{"from", "to", "event"})

	illegalTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_illegal_transitions_total",
		Help: "Events rejected by the transition table",
	}, []string{"from", "event"})

	interactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusbot_interactions_total",
		Help: "Component and modal interactions by verdict",
	}, []string{"verdict"}) // verdict=accepted|rejected|stale
)

// RecordSessionEnd counts a finished session and its duration.
func RecordSessionEnd(state, reason string, elapsed time.Duration) {
	sessionsTotal.WithLabelValues(state, reason).Inc()
	sessionDuration.WithLabelValues(state).Observe(elapsed.Seconds())
}

// IncActiveSessions tracks a newly started session.
func IncActiveSessions() { sessionsActive.Inc() }

// DecActiveSessions tracks a finished session.
func DecActiveSessions() { sessionsActive.Dec() }

// RecordTransition counts a single applied transition.
func RecordTransition(from, to, event string) {
	transitionsTotal.WithLabelValues(from, to, event).Inc()
}

// RecordIllegalTransition counts a forbidden State×Event pair.
func RecordIllegalTransition(from, event string) {
	illegalTransitionsTotal.WithLabelValues(from, event).Inc()
}

// RecordInteraction counts a routed interaction by collector verdict.
func RecordInteraction(verdict string) {
	interactionsTotal.WithLabelValues(verdict).Inc()
}
