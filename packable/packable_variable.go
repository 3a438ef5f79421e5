package packable

import (
	"github.com/quickwritereader/tracepack/access"
)

// ⚠️ Allocation Warning:
// Boxing a slice type such as PackBinary into the Packable interface copies
// the slice header to the heap. Hot paths that pack the same field every
// event should keep the Packable value around instead of rebuilding it.

// PackBinary packs a length-prefixed blob.
type PackBinary []byte

func (v PackBinary) PackInto(c *access.Collector) error { return c.AddBinary(v, len(v)) }

// PackBinaryString packs the bytes of a string as a blob without copying them.
type PackBinaryString string

func (v PackBinaryString) PackInto(c *access.Collector) error { return c.AddBinaryString(string(v)) }

// PackText packs a string as null-terminated UTF-16 text.
type PackText string

func (v PackText) PackInto(c *access.Collector) error { return c.AddText(string(v)) }

// PackUTF16 packs UTF-16 code units as null-terminated text.
type PackUTF16 []uint16

func (v PackUTF16) PackInto(c *access.Collector) error { return c.AddUTF16(v) }

// PackSlice packs a flat array of fixed-size elements.
type PackSlice[T access.Fixed] []T

func (v PackSlice[T]) PackInto(c *access.Collector) error { return access.AddSlice(c, []T(v)) }
