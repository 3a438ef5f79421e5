package access

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// BeginBuffered opens a nested region. Until the matching EndBuffered every
// write is copied into the auxiliary buffer.
func (c *Collector) BeginBuffered() error {
	if err := c.writable(); err != nil {
		return err
	}
	c.scalarsEnd()
	c.regions = append(c.regions, plainRegion)
	return nil
}

// EndBuffered closes the innermost region, which must have been opened by
// BeginBuffered. Closing the outermost region pins the auxiliary buffer as a
// single descriptor.
func (c *Collector) EndBuffered() error {
	if err := c.writable(); err != nil {
		return err
	}
	if len(c.regions) == 0 {
		return c.fail(fmt.Errorf("%w: EndBuffered without an open region", ErrInvalidState))
	}
	if top := c.regions[len(c.regions)-1]; top != plainRegion {
		return c.fail(fmt.Errorf("%w: innermost region is an array (bookmark %d)", ErrInvalidArgument, top))
	}
	return c.closeRegion()
}

// BeginBufferedArray opens a nested region holding an array whose element
// count is only known once its elements are written. Two bytes are reserved
// for the count; the returned bookmark is the offset just after them.
func (c *Collector) BeginBufferedArray() (int, error) {
	if err := c.BeginBuffered(); err != nil {
		return 0, err
	}
	if _, err := c.bufferReserve(2); err != nil {
		return 0, err
	}
	bookmark := c.bufferPos
	c.regions[len(c.regions)-1] = bookmark
	return bookmark, nil
}

// EndBufferedArray patches count into the two bytes before bookmark and closes
// the region. Counts above 65535 are clamped.
func (c *Collector) EndBufferedArray(bookmark, count int) error {
	if err := c.writable(); err != nil {
		return err
	}
	if len(c.regions) == 0 {
		return c.fail(fmt.Errorf("%w: EndBufferedArray without an open region", ErrInvalidState))
	}
	if top := c.regions[len(c.regions)-1]; top == plainRegion || top != bookmark {
		return c.fail(fmt.Errorf("%w: bookmark %d does not match innermost region %d", ErrInvalidArgument, bookmark, top))
	}
	if count < 0 {
		return c.fail(fmt.Errorf("%w: negative array count %d", ErrInvalidArgument, count))
	}
	if count > math.MaxUint16 {
		count = math.MaxUint16
	}
	binary.LittleEndian.PutUint16(c.buffer[bookmark-2:], uint16(count))
	return c.closeRegion()
}

func (c *Collector) closeRegion() error {
	c.regions = c.regions[:len(c.regions)-1]
	if len(c.regions) > 0 {
		return nil
	}
	if err := c.ensureBuffer(c.bufferPos); err != nil {
		return err
	}
	buf := c.buffer
	if err := c.pinObject(unsafe.Pointer(&buf[0]), c.bufferPos, buf); err != nil {
		return err
	}
	// the pin owns buf now; the next region starts on a fresh pooled buffer
	c.buffer = nil
	c.bufferPos = 0
	return nil
}
