package access

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/quickwritereader/tracepack/types"
	"github.com/quickwritereader/tracepack/utils"
)

var bufPool = utils.NewBufferPool()

// plainRegion marks an open buffered region that is not an array.
const plainRegion = -1

// Collector packs the fields of one event into caller-owned scratch,
// descriptor and pin storage. Scalars accumulate in the scratch region and
// share one descriptor per contiguous run; blobs, text and flat arrays are
// pinned in place; everything written inside a buffered region is copied into
// the auxiliary buffer, which is pinned as a single blob when the outermost
// region closes.
//
// A Collector is not safe for concurrent use. Lease one per goroutine with
// GetCollector or WithCollector.
type Collector struct {
	scratch    []byte
	scratchPos int
	runStart   int

	descs   []types.Descriptor
	descPos int

	pins   []Pin
	pinPos int

	writingScalars bool
	enabled        bool
	failed         error

	buffer    []byte // auxiliary buffer, len == cap
	bufferPos int
	regions   []int // open buffered regions: plainRegion or an array bookmark

	text textEncoder
}

func NewCollector() *Collector {
	return &Collector{regions: make([]int, 0, 8)}
}

// Enable binds the storage for one event. The auxiliary buffer is left alone.
func (c *Collector) Enable(scratch []byte, descs []types.Descriptor, pins []Pin) error {
	if c.enabled {
		return fmt.Errorf("%w: Enable called while %s", ErrInvalidState, c.State())
	}
	c.scratch = scratch
	c.scratchPos = 0
	c.runStart = 0
	c.descs = descs
	c.descPos = 0
	c.pins = pins
	c.pinPos = 0
	c.writingScalars = false
	c.failed = nil
	c.enabled = true
	return nil
}

// Disable drops every reference to caller storage. Pins are not released.
func (c *Collector) Disable() {
	c.scratch = nil
	c.scratchPos = 0
	c.runStart = 0
	c.descs = nil
	c.descPos = 0
	c.pins = nil
	c.pinPos = 0
	c.writingScalars = false
	c.enabled = false
	c.failed = nil
	c.bufferPos = 0
	c.regions = c.regions[:0]
}

// Finish closes the open scalar run and returns the number of populated
// descriptors. It must be called before the descriptors are written out.
func (c *Collector) Finish() (int, error) {
	if err := c.writable(); err != nil {
		return 0, err
	}
	if len(c.regions) > 0 {
		return 0, c.fail(fmt.Errorf("%w: Finish with %d open buffered regions", ErrInvalidState, len(c.regions)))
	}
	c.scalarsEnd()
	return c.descPos, nil
}

func (c *Collector) State() State {
	switch {
	case !c.enabled:
		return StateDisabled
	case c.failed != nil:
		return StateFailed
	case len(c.regions) > 0:
		return StateBuffering
	case c.writingScalars:
		return StateScalars
	default:
		return StateIdle
	}
}

// Depth returns the number of open buffered regions.
func (c *Collector) Depth() int { return len(c.regions) }

// BufferedLen returns the logical length of the auxiliary buffer.
func (c *Collector) BufferedLen() int { return c.bufferPos }

// ScratchUsed returns the number of scratch bytes written so far.
func (c *Collector) ScratchUsed() int { return c.scratchPos }

// Descriptors returns the descriptors populated so far. A scalar run that is
// still open is not included until Finish closes it.
func (c *Collector) Descriptors() []types.Descriptor { return c.descs[:c.descPos] }

// Pins returns the pin entries consumed so far.
func (c *Collector) Pins() []Pin { return c.pins[:c.pinPos] }

// Err returns the error that aborted the current event, if any.
func (c *Collector) Err() error { return c.failed }

func (c *Collector) writable() error {
	if !c.enabled {
		return fmt.Errorf("%w: collector is disabled", ErrInvalidState)
	}
	if c.failed != nil {
		return fmt.Errorf("%w: %w", ErrEventAborted, c.failed)
	}
	return nil
}

func (c *Collector) fail(err error) error {
	c.failed = err
	return err
}

// reserve returns n writable bytes in the scratch region at depth 0, or in the
// auxiliary buffer while buffering.
func (c *Collector) reserve(n int) ([]byte, error) {
	if err := c.writable(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, c.fail(fmt.Errorf("%w: negative scalar size %d", ErrInvalidArgument, n))
	}
	if len(c.regions) > 0 {
		return c.bufferReserve(n)
	}
	if n == 0 {
		return nil, nil
	}
	if n > len(c.scratch)-c.scratchPos {
		return nil, c.fail(fmt.Errorf("%w: scratch region full (%d of %d bytes used, %d requested)",
			ErrCapacityExceeded, c.scratchPos, len(c.scratch), n))
	}
	if err := c.scalarsBegin(); err != nil {
		return nil, err
	}
	dst := c.scratch[c.scratchPos : c.scratchPos+n]
	c.scratchPos += n
	return dst, nil
}

func (c *Collector) scalarsBegin() error {
	if c.writingScalars {
		return nil
	}
	if c.descPos >= len(c.descs) {
		return c.fail(fmt.Errorf("%w: descriptor array full (%d slots)", ErrCapacityExceeded, len(c.descs)))
	}
	c.descs[c.descPos] = types.Descriptor{Ptr: unsafe.Pointer(&c.scratch[c.scratchPos])}
	c.runStart = c.scratchPos
	c.writingScalars = true
	return nil
}

func (c *Collector) scalarsEnd() {
	if !c.writingScalars {
		return
	}
	c.descs[c.descPos].Size = c.scratchPos - c.runStart
	c.descPos++
	c.writingScalars = false
}

// pinObject freezes addr and emits a descriptor for it. owned, when not nil,
// becomes the pin's responsibility only on success.
func (c *Collector) pinObject(addr unsafe.Pointer, size int, owned []byte) error {
	if c.pinPos >= len(c.pins) {
		return c.fail(fmt.Errorf("%w: pin table full (%d slots)", ErrCapacityExceeded, len(c.pins)))
	}
	if c.descPos >= len(c.descs) {
		return c.fail(fmt.Errorf("%w: descriptor array full (%d slots)", ErrCapacityExceeded, len(c.descs)))
	}
	c.pins[c.pinPos].pin(addr, size, owned)
	c.pinPos++
	c.descs[c.descPos] = types.Descriptor{Ptr: addr, Size: size}
	c.descPos++
	return nil
}

func (c *Collector) bufferReserve(n int) ([]byte, error) {
	if n > math.MaxInt-c.bufferPos {
		return nil, c.fail(fmt.Errorf("%w: auxiliary buffer position %d + %d", ErrArithmeticOverflow, c.bufferPos, n))
	}
	end := c.bufferPos + n
	if err := c.ensureBuffer(end); err != nil {
		return nil, err
	}
	dst := c.buffer[c.bufferPos:end]
	c.bufferPos = end
	return dst, nil
}

func (c *Collector) ensureBuffer(required int) error {
	if c.buffer != nil && len(c.buffer) >= required {
		return nil
	}
	grown, ok := bufPool.Grow(c.buffer, c.bufferPos, required)
	if !ok {
		return c.fail(fmt.Errorf("%w: auxiliary buffer cannot grow to %d bytes", ErrArithmeticOverflow, required))
	}
	c.buffer = grown
	return nil
}
