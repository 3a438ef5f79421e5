package access

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
)

// SeqReader walks a packed record, the concatenation of an event's
// descriptors, field by field in the order the fields were written.
type SeqReader struct {
	buf []byte
	pos int
	dec *encoding.Decoder
}

func NewSeqReader(buf []byte) *SeqReader {
	return &SeqReader{buf: buf}
}

// Pos returns the offset of the next field.
func (s *SeqReader) Pos() int { return s.pos }

// Remaining returns the number of unread bytes.
func (s *SeqReader) Remaining() int { return len(s.buf) - s.pos }

func (s *SeqReader) take(n int, what string) ([]byte, error) {
	if n < 0 || n > len(s.buf)-s.pos {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left", ErrShortRecord, what, n, s.pos, len(s.buf)-s.pos)
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *SeqReader) Uint8() (uint8, error) {
	b, err := s.take(1, "uint8")
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (s *SeqReader) Int8() (int8, error) {
	v, err := s.Uint8()
	return int8(v), err
}

func (s *SeqReader) Bool() (bool, error) {
	v, err := s.Uint8()
	return v != 0, err
}

func (s *SeqReader) Uint16() (uint16, error) {
	b, err := s.take(2, "uint16")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (s *SeqReader) Int16() (int16, error) {
	v, err := s.Uint16()
	return int16(v), err
}

func (s *SeqReader) Uint32() (uint32, error) {
	b, err := s.take(4, "uint32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (s *SeqReader) Int32() (int32, error) {
	v, err := s.Uint32()
	return int32(v), err
}

func (s *SeqReader) Uint64() (uint64, error) {
	b, err := s.take(8, "uint64")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (s *SeqReader) Int64() (int64, error) {
	v, err := s.Uint64()
	return int64(v), err
}

func (s *SeqReader) Float32() (float32, error) {
	v, err := s.Uint32()
	return math.Float32frombits(v), err
}

func (s *SeqReader) Float64() (float64, error) {
	v, err := s.Uint64()
	return math.Float64frombits(v), err
}

// Count reads a 16-bit length or element count prefix.
func (s *SeqReader) Count() (int, error) {
	v, err := s.Uint16()
	return int(v), err
}

// Binary reads a length-prefixed blob. The result aliases the record.
func (s *SeqReader) Binary() ([]byte, error) {
	n, err := s.Count()
	if err != nil {
		return nil, err
	}
	return s.take(n, "binary")
}

// Array reads a count-prefixed flat array of itemSize-byte elements and
// returns the count with the raw element bytes.
func (s *SeqReader) Array(itemSize int) (int, []byte, error) {
	n, err := s.Count()
	if err != nil {
		return 0, nil, err
	}
	raw, err := s.take(n*itemSize, "array")
	if err != nil {
		return 0, nil, err
	}
	return n, raw, nil
}

// Text reads a byte-length-prefixed, null-terminated UTF-16LE string.
func (s *SeqReader) Text() (string, error) {
	raw, err := s.Binary()
	if err != nil {
		return "", err
	}
	if len(raw) < 2 || len(raw)%2 != 0 || raw[len(raw)-2] != 0 || raw[len(raw)-1] != 0 {
		return "", fmt.Errorf("%w: text of %d bytes is not a terminated UTF-16 string", ErrShortRecord, len(raw))
	}
	if s.dec == nil {
		s.dec = utf16LE.NewDecoder()
	}
	out, err := s.dec.Bytes(raw[:len(raw)-2])
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(out), nil
}
