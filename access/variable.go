package access

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"strings"
	"unsafe"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

const (
	// maxBinaryLength is what an oversized blob's length prefix is clamped to.
	maxBinaryLength = math.MaxUint16 - 1
	// maxArrayLength is what an oversized array's count prefix is clamped to.
	maxArrayLength = math.MaxUint16
	// maxTextUnits bounds text, terminator included, so its byte prefix fits
	// the blob clamp.
	maxTextUnits = maxBinaryLength / 2
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Fixed is the set of element types AddSlice can pin without conversion.
type Fixed interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// AddBinary packs the first size bytes of data behind a 16-bit length.
// Sizes above 65535 are clamped to 65534. At depth 0 data is pinned in place.
func (c *Collector) AddBinary(data []byte, size int) error {
	if err := c.writable(); err != nil {
		return err
	}
	if size < 0 || size > len(data) {
		return c.fail(fmt.Errorf("%w: binary size %d for %d bytes", ErrInvalidArgument, size, len(data)))
	}
	if size > math.MaxUint16 {
		size = maxBinaryLength
	}
	return c.addPayload(size, data[:size])
}

// AddBinaryString packs the bytes of s as a binary field without copying them.
func (c *Collector) AddBinaryString(s string) error {
	b := unsafe.Slice(unsafe.StringData(s), len(s))
	return c.AddBinary(b, len(b))
}

// AddArray packs length elements of itemSize bytes taken from raw behind a
// 16-bit element count. Counts above 65535 are clamped to 65535.
func (c *Collector) AddArray(raw []byte, length, itemSize int) error {
	if err := c.writable(); err != nil {
		return err
	}
	if length < 0 || itemSize < 0 {
		return c.fail(fmt.Errorf("%w: array of %d items of %d bytes", ErrInvalidArgument, length, itemSize))
	}
	if length > maxArrayLength {
		length = maxArrayLength
	}
	if itemSize != 0 && length > math.MaxInt/itemSize {
		return c.fail(fmt.Errorf("%w: array of %d items of %d bytes", ErrArithmeticOverflow, length, itemSize))
	}
	size := length * itemSize
	if size > len(raw) {
		return c.fail(fmt.Errorf("%w: array needs %d bytes, got %d", ErrInvalidArgument, size, len(raw)))
	}
	return c.addPayload(length, raw[:size])
}

// AddSlice packs s as a flat array. The elements are pinned in place at depth
// 0, so their in-memory (little-endian) representation is what gets written.
func AddSlice[T Fixed](c *Collector, s []T) error {
	var zero T
	itemSize := int(unsafe.Sizeof(zero))
	if len(s) == 0 {
		return c.AddArray(nil, 0, itemSize)
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*itemSize)
	return c.AddArray(raw, len(s), itemSize)
}

// AddText packs s as null-terminated UTF-16LE text behind a 16-bit byte
// length that includes the terminator. Anything after an embedded NUL is not
// transmitted.
func (c *Collector) AddText(s string) error {
	if err := c.writable(); err != nil {
		return err
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	owned, size, err := c.text.encode(s)
	if err != nil {
		return c.fail(fmt.Errorf("%w: transcoding text: %w", ErrInvalidArgument, err))
	}
	return c.addText(owned[:size], owned)
}

// AddUTF16 packs UTF-16 code units as text. When units already hold a NUL
// the prefix up to and including it is pinned in place.
func (c *Collector) AddUTF16(units []uint16) error {
	if err := c.writable(); err != nil {
		return err
	}
	end := slices.Index(units, 0)
	if end >= 0 && end < maxTextUnits {
		raw := unsafe.Slice((*byte)(unsafe.Pointer(&units[0])), (end+1)*2)
		return c.addText(raw, nil)
	}
	if end < 0 {
		end = len(units)
	}
	if end > maxTextUnits-1 {
		end = maxTextUnits - 1
		if isHighSurrogate(units[end-1]) {
			end--
		}
	}
	size := (end + 1) * 2
	owned := bufPool.Acquire(size)
	for i, u := range units[:end] {
		binary.LittleEndian.PutUint16(owned[i*2:], u)
	}
	owned[size-2], owned[size-1] = 0, 0
	return c.addText(owned[:size], owned)
}

// addPayload writes the 16-bit prefix and then the payload, pinned at depth 0
// or copied into the auxiliary buffer while buffering.
func (c *Collector) addPayload(prefix int, payload []byte) error {
	if err := c.addLength(prefix); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	if len(c.regions) > 0 {
		dst, err := c.bufferReserve(len(payload))
		if err != nil {
			return err
		}
		copy(dst, payload)
		return nil
	}
	c.scalarsEnd()
	return c.pinObject(unsafe.Pointer(&payload[0]), len(payload), nil)
}

// addText is addPayload for text: the prefix is the byte size and owned, the
// pooled buffer holding a transcoded copy, is recycled unless a pin takes it.
func (c *Collector) addText(payload, owned []byte) error {
	if err := c.addLength(len(payload)); err != nil {
		bufPool.Release(owned)
		return err
	}
	if len(c.regions) > 0 {
		dst, err := c.bufferReserve(len(payload))
		if err == nil {
			copy(dst, payload)
		}
		bufPool.Release(owned)
		return err
	}
	c.scalarsEnd()
	if err := c.pinObject(unsafe.Pointer(&payload[0]), len(payload), owned); err != nil {
		bufPool.Release(owned)
		return err
	}
	return nil
}

type textEncoder struct {
	enc *encoding.Encoder
}

// encode transcodes s to UTF-16LE plus a NUL pair into a pooled buffer and
// returns it with the number of bytes used, clamped to the text limit.
func (t *textEncoder) encode(s string) ([]byte, int, error) {
	if t.enc == nil {
		t.enc = utf16LE.NewEncoder()
	}
	t.enc.Reset()
	// every UTF-8 byte yields at most two UTF-16 bytes
	buf := bufPool.Acquire(2*len(s) + 2)
	n, _, err := t.enc.Transform(buf, unsafe.Slice(unsafe.StringData(s), len(s)), true)
	if err != nil {
		bufPool.Release(buf)
		return nil, 0, err
	}
	if n > 2*(maxTextUnits-1) {
		n = 2 * (maxTextUnits - 1)
		if isHighSurrogate(binary.LittleEndian.Uint16(buf[n-2:])) {
			n -= 2
		}
	}
	buf[n], buf[n+1] = 0, 0
	return buf, n + 2, nil
}

// isHighSurrogate reports whether u opens a surrogate pair. Truncation never
// keeps one without its partner.
func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u < 0xDC00
}
