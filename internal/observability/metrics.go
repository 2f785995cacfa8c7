package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Subsystem: "auth",
		Name:      "sessions_started_total",
		Help:      "Sessions opened by login, by login method.",
	}, []string{"method"})
	sessionsEnded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Subsystem: "auth",
		Name:      "sessions_ended_total",
		Help:      "Sessions closed by logout.",
	})
	onboardingTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Subsystem: "onboarding",
		Name:      "transitions_total",
		Help:      "Onboarding step moves, by direction.",
	}, []string{"direction"})
	onboardingCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcoach",
		Subsystem: "onboarding",
		Name:      "completed_total",
		Help:      "Finished onboarding flows, by goal.",
	}, []string{"goal"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitcoach",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(sessionsStarted, sessionsEnded, onboardingTransitions, onboardingCompleted, httpDuration)
}

// RecordSessionStarted counts a login.
func RecordSessionStarted(method string) {
	sessionsStarted.WithLabelValues(method).Inc()
}

// RecordSessionEnded counts a logout.
func RecordSessionEnded() {
	sessionsEnded.Inc()
}

// RecordOnboardingTransition counts a "next" or "back" move.
func RecordOnboardingTransition(direction string) {
	onboardingTransitions.WithLabelValues(direction).Inc()
}

// RecordOnboardingCompleted counts a finished flow. A missing goal is
// reported as "unset".
func RecordOnboardingCompleted(goal string) {
	if goal == "" {
		goal = "unset"
	}
	onboardingCompleted.WithLabelValues(goal).Inc()
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
