package emit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quickwritereader/tracepack/access"
	"github.com/quickwritereader/tracepack/cfg"
	"github.com/quickwritereader/tracepack/packable"
	"github.com/quickwritereader/tracepack/telemetry"
	"github.com/quickwritereader/tracepack/types"
)

// eventStorage is the caller-owned storage one event is packed into.
type eventStorage struct {
	scratch []byte
	descs   []types.Descriptor
	pins    []access.Pin
}

// Emitter packs events and hands them to a sink. It is safe for concurrent
// use: every Write leases its own collector and storage.
type Emitter struct {
	sink    Sink
	limits  cfg.LimitsConfiguration
	logger  zerolog.Logger
	storage sync.Pool
}

type Option func(e *Emitter)

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Emitter) { e.logger = logger }
}

func NewEmitter(sink Sink, limits cfg.LimitsConfiguration, opts ...Option) (*Emitter, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("emitter limits: %w", err)
	}
	e := &Emitter{
		sink:   sink,
		limits: limits,
		logger: log.Logger,
	}
	e.storage.New = func() any {
		return &eventStorage{
			scratch: make([]byte, limits.ScratchBytes),
			descs:   make([]types.Descriptor, limits.Descriptors),
			pins:    make([]access.Pin, limits.Pins),
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Write packs fields into one event and writes it to the sink. Pins are
// released only after the sink returns. A failed event is dropped whole.
func (e *Emitter) Write(ctx context.Context, name string, fields ...packable.Packable) error {
	if err := ctx.Err(); err != nil {
		return e.drop(name, nil, err)
	}

	st := e.storage.Get().(*eventStorage)
	c := access.GetCollector()
	defer func() {
		access.ReleasePins(st.pins)
		access.ReleaseCollector(c)
		e.storage.Put(st)
	}()

	if err := c.Enable(st.scratch, st.descs, st.pins); err != nil {
		return e.drop(name, c, err)
	}
	if err := packable.Pack(c, fields...); err != nil {
		return e.drop(name, c, err)
	}
	n, err := c.Finish()
	if err != nil {
		return e.drop(name, c, err)
	}

	descs := st.descs[:n]
	if err := e.sink.WriteEvent(ctx, name, descs); err != nil {
		return e.drop(name, c, fmt.Errorf("sink: %w", err))
	}

	size := types.TotalSize(descs)
	telemetry.EventsWrittenTotal.Inc()
	telemetry.EventBytes.Observe(float64(size))
	e.logger.Debug().
		Str("event", name).
		Int("descriptors", n).
		Int("pins", len(c.Pins())).
		Int("bytes", size).
		Msg("Event written")
	return nil
}

// drop accounts for an abandoned event. c is nil when the event was dropped
// before a collector was leased.
func (e *Emitter) drop(name string, c *access.Collector, err error) error {
	reason := dropReason(err)
	telemetry.EventsDroppedTotal.With(reason).Inc()
	ev := e.logger.Warn().
		Err(err).
		Str("event", name).
		Str("reason", reason)
	if c != nil {
		ev = ev.Int("depth", c.Depth()).Int("descriptors", len(c.Descriptors()))
	}
	ev.Msg("Event dropped")
	return err
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, access.ErrCapacityExceeded):
		return "capacity"
	case errors.Is(err, access.ErrArithmeticOverflow):
		return "overflow"
	case errors.Is(err, access.ErrInvalidState):
		return "state"
	case errors.Is(err, access.ErrInvalidArgument):
		return "argument"
	default:
		return "sink"
	}
}
