package access

import (
	"encoding/binary"
	"math"
)

// AddScalar appends b to the current scalar run, or to the auxiliary buffer
// while buffering.
func (c *Collector) AddScalar(b []byte) error {
	dst, err := c.reserve(len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// AddInt8 packs an int8 value.
func (c *Collector) AddInt8(v int8) error {
	return c.AddUint8(uint8(v))
}

// AddUint8 packs a uint8 value.
func (c *Collector) AddUint8(v uint8) error {
	dst, err := c.reserve(1)
	if err != nil {
		return err
	}
	dst[0] = v
	return nil
}

// AddBool packs a boolean as a single byte.
func (c *Collector) AddBool(v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return c.AddUint8(b)
}

// AddInt16 packs an int16 value.
func (c *Collector) AddInt16(v int16) error {
	return c.AddUint16(uint16(v))
}

// AddUint16 packs a uint16 value.
func (c *Collector) AddUint16(v uint16) error {
	dst, err := c.reserve(2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(dst, v)
	return nil
}

// AddInt32 packs an int32 value.
func (c *Collector) AddInt32(v int32) error {
	return c.AddUint32(uint32(v))
}

// AddUint32 packs a uint32 value.
func (c *Collector) AddUint32(v uint32) error {
	dst, err := c.reserve(4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(dst, v)
	return nil
}

// AddInt64 packs an int64 value.
func (c *Collector) AddInt64(v int64) error {
	return c.AddUint64(uint64(v))
}

// AddUint64 packs a uint64 value.
func (c *Collector) AddUint64(v uint64) error {
	dst, err := c.reserve(8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(dst, v)
	return nil
}

// AddFloat32 packs a float32 value.
func (c *Collector) AddFloat32(v float32) error {
	return c.AddUint32(math.Float32bits(v))
}

// AddFloat64 packs a float64 value.
func (c *Collector) AddFloat64(v float64) error {
	return c.AddUint64(math.Float64bits(v))
}

func (c *Collector) addLength(n int) error {
	return c.AddUint16(uint16(n))
}
