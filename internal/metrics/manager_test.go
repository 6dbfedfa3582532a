package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "/profile", "200").Inc()
	m.CounterPersonalRecords.WithLabelValues("created").Add(2)
	m.CounterMediaSelfHealed.Inc()
	m.HistRequestDuration.WithLabelValues("/profile").Observe(0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/profile", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterPersonalRecords.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterMediaSelfHealed))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["backend_test_server_request"])
	assert.True(t, names["backend_test_server_request_duration_seconds"])
}

func TestNewDiscardManager_CountsWithoutRegistering(t *testing.T) {
	m := NewDiscardManager()
	m.CounterWorkoutLogs.WithLabelValues("custom").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterWorkoutLogs.WithLabelValues("custom")))

	// a second manager does not collide with the first
	assert.NotPanics(t, func() { NewDiscardManager() })
}
