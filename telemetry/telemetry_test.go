package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCounter("unused", "unused").Inc()
		NewCounterVec("unused_vec", "unused", []string{"reason"}).With("x").Add(2)
		NewHistogramWithBuckets("unused_hist", "unused", EventBytesBuckets).Observe(1)
	})
}

func TestInitMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	InitMetrics(reg)
	t.Cleanup(func() {
		registry = nil
		EventsWrittenTotal = NoopStat{}
		EventsDroppedTotal = noopCounterVec{}
		EventBytes = NoopStat{}
	})

	EventsWrittenTotal.Inc()
	EventsDroppedTotal.With("capacity").Inc()
	EventBytes.Observe(12)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"tracepack_events_written_total",
		"tracepack_events_dropped_total",
		"tracepack_event_bytes",
	}, names)

	assert.Equal(t, 1.0, testutil.ToFloat64(EventsWrittenTotal.(prometheus.Counter)))
}
