package packable

import (
	"github.com/quickwritereader/tracepack/access"
)

// PackInt8 implements the Packable interface for int8.
type PackInt8 int8

func (v PackInt8) PackInto(c *access.Collector) error { return c.AddInt8(int8(v)) }

// PackUint8 implements the Packable interface for uint8.
type PackUint8 uint8

func (v PackUint8) PackInto(c *access.Collector) error { return c.AddUint8(uint8(v)) }

// PackInt16 implements the Packable interface for int16.
type PackInt16 int16

func (v PackInt16) PackInto(c *access.Collector) error { return c.AddInt16(int16(v)) }

// PackUint16 implements the Packable interface for uint16.
type PackUint16 uint16

func (v PackUint16) PackInto(c *access.Collector) error { return c.AddUint16(uint16(v)) }

// PackInt32 implements the Packable interface for int32.
type PackInt32 int32

func (v PackInt32) PackInto(c *access.Collector) error { return c.AddInt32(int32(v)) }

// PackUint32 implements the Packable interface for uint32.
type PackUint32 uint32

func (v PackUint32) PackInto(c *access.Collector) error { return c.AddUint32(uint32(v)) }

// PackInt64 implements the Packable interface for int64.
type PackInt64 int64

func (v PackInt64) PackInto(c *access.Collector) error { return c.AddInt64(int64(v)) }

// PackUint64 implements the Packable interface for uint64.
type PackUint64 uint64

func (v PackUint64) PackInto(c *access.Collector) error { return c.AddUint64(uint64(v)) }

// PackFloat32 implements the Packable interface for float32.
type PackFloat32 float32

func (v PackFloat32) PackInto(c *access.Collector) error { return c.AddFloat32(float32(v)) }

// PackFloat64 implements the Packable interface for float64.
type PackFloat64 float64

func (v PackFloat64) PackInto(c *access.Collector) error { return c.AddFloat64(float64(v)) }

// PackBool implements the Packable interface for bool, one byte on the wire.
type PackBool bool

func (v PackBool) PackInto(c *access.Collector) error { return c.AddBool(bool(v)) }
