package telemetry

// EventBytesBuckets covers records from a few scalars up to the 64 KiB
// event size limit.
var EventBytesBuckets = []float64{16, 64, 256, 1024, 4096, 16384, 65536}

var (
	// EventsWrittenTotal counts events handed to a sink successfully.
	EventsWrittenTotal Counter = NoopStat{}

	// EventsDroppedTotal counts abandoned events by reason
	// (canceled, capacity, overflow, state, argument, sink).
	EventsDroppedTotal CounterVec = noopCounterVec{}

	// EventBytes observes the packed size of written events.
	EventBytes Histogram = NoopStat{}
)

func initEventMetrics() {
	EventsWrittenTotal = NewCounter("events_written_total", "Events written to a sink")
	EventsDroppedTotal = NewCounterVec("events_dropped_total", "Events dropped before or during write", []string{"reason"})
	EventBytes = NewHistogramWithBuckets("event_bytes", "Packed event size in bytes", EventBytesBuckets)
}
