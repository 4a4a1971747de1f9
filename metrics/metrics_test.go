package metrics_test

import (
	"net/http/httptest"
	"testing"

	"lol-discord-bot/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := metrics.NewService(reg)

	s.IncRiotRequest("match", 200)
	s.IncRiotRequest("match", 200)
	s.IncRateLimited("account")
	s.IncPollCycle("notified")
	s.IncNotification(true)
	s.IncNotification(false)
	s.ObserveWeeklyLosses(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.RiotRequests.WithLabelValues("match", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.RateLimited.WithLabelValues("account")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.PollCycles.WithLabelValues("notified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Notifications.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Notifications.WithLabelValues("failed")))
	assert.Equal(t, 7.0, testutil.ToFloat64(s.WeeklyLosses))
}

func TestNewMetricsHandler_ExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := metrics.NewService(reg)
	s.IncPollCycle("unchanged")

	rec := httptest.NewRecorder()
	metrics.NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `lol_poll_cycles_total{result="unchanged"} 1`)
}
