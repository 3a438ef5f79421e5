package packable

import (
	"fmt"

	"github.com/quickwritereader/tracepack/access"
)

// Packable is a field that knows how to write itself into a collector.
// Fields are written in schema order; composite fields open buffered
// regions around their members.
type Packable interface {
	PackInto(c *access.Collector) error
}

// Pack writes args into c in order and stops at the first error.
func Pack(c *access.Collector, args ...Packable) error {
	for i, arg := range args {
		if err := packField(c, arg); err != nil {
			return fmt.Errorf("Pack: field %d (%T): %w", i, arg, err)
		}
	}
	return nil
}

// packField writes f, packing a nil field as an empty blob as PackAny does
// for nil values.
func packField(c *access.Collector, f Packable) error {
	if f == nil {
		return c.AddBinary(nil, 0)
	}
	return f.PackInto(c)
}

// PackStruct is a composite field. Its members are buffered and leave the
// collector as a single descriptor when the struct is not nested.
type PackStruct []Packable

func NewPackStruct(fields ...Packable) PackStruct {
	return PackStruct(fields)
}

func (p PackStruct) PackInto(c *access.Collector) error {
	if err := c.BeginBuffered(); err != nil {
		return err
	}
	for i, f := range p {
		if err := packField(c, f); err != nil {
			return fmt.Errorf("PackStruct: field %d (%T): %w", i, f, err)
		}
	}
	return c.EndBuffered()
}

// PackList is an array of elements that are not fixed-size, such as structs
// or text. The element count is patched in once every element is written.
type PackList []Packable

func (p PackList) PackInto(c *access.Collector) error {
	bookmark, err := c.BeginBufferedArray()
	if err != nil {
		return err
	}
	for i, e := range p {
		if err := packField(c, e); err != nil {
			return fmt.Errorf("PackList: element %d (%T): %w", i, e, err)
		}
	}
	return c.EndBufferedArray(bookmark, len(p))
}

// PackAny converts a generic value into a Packable.
// Returns an error if the type is unsupported.
func PackAny(v any) (Packable, error) {
	switch val := v.(type) {
	case nil:
		return PackBinary(nil), nil
	case Packable:
		return val, nil
	case string:
		return PackText(val), nil
	case []byte:
		return PackBinary(val), nil
	case bool:
		return PackBool(val), nil
	case int8:
		return PackInt8(val), nil
	case int16:
		return PackInt16(val), nil
	case int32:
		return PackInt32(val), nil
	case int64:
		return PackInt64(val), nil
	case int:
		return PackInt64(val), nil
	case uint8:
		return PackUint8(val), nil
	case uint16:
		return PackUint16(val), nil
	case uint32:
		return PackUint32(val), nil
	case uint64:
		return PackUint64(val), nil
	case float32:
		return PackFloat32(val), nil
	case float64:
		return PackFloat64(val), nil
	case []int32:
		return PackSlice[int32](val), nil
	case []int64:
		return PackSlice[int64](val), nil
	case []float64:
		return PackSlice[float64](val), nil
	case []string:
		list := make(PackList, len(val))
		for i, s := range val {
			list[i] = PackText(s)
		}
		return list, nil
	case map[string]string:
		return PackMapStr(val), nil
	case map[string]any:
		m := make(PackMapSorted, len(val))
		for k, e := range val {
			p, err := PackAny(e)
			if err != nil {
				return nil, fmt.Errorf("PackAny: key %q: %w", k, err)
			}
			m[k] = p
		}
		return m, nil
	case []any:
		list := make(PackList, len(val))
		for i, e := range val {
			p, err := PackAny(e)
			if err != nil {
				return nil, fmt.Errorf("PackAny: element %d: %w", i, err)
			}
			list[i] = p
		}
		return list, nil
	default:
		return nil, fmt.Errorf("PackAny: invalid type %T", val)
	}
}
