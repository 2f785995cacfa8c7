package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOnboardingCompletedUnsetGoal(t *testing.T) {
	before := testutil.ToFloat64(onboardingCompleted.WithLabelValues("unset"))
	RecordOnboardingCompleted("")
	assert.Equal(t, before+1, testutil.ToFloat64(onboardingCompleted.WithLabelValues("unset")))
}

func TestRecordTransitions(t *testing.T) {
	before := testutil.ToFloat64(onboardingTransitions.WithLabelValues("next"))
	RecordOnboardingTransition("next")
	RecordOnboardingTransition("next")
	assert.Equal(t, before+2, testutil.ToFloat64(onboardingTransitions.WithLabelValues("next")))
}

func TestSessionCounters(t *testing.T) {
	started := testutil.ToFloat64(sessionsStarted.WithLabelValues("google"))
	ended := testutil.ToFloat64(sessionsEnded)

	RecordSessionStarted("google")
	RecordSessionEnded()

	assert.Equal(t, started+1, testutil.ToFloat64(sessionsStarted.WithLabelValues("google")))
	assert.Equal(t, ended+1, testutil.ToFloat64(sessionsEnded))
}

func TestObserveHTTPRequest(t *testing.T) {
	ObserveHTTPRequest("GET", "", 404, 3*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(httpDuration, "fitcoach_http_request_duration_seconds"))
}
