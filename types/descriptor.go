package types

import "unsafe"

// Descriptor references one contiguous piece of a packed event.
// The event writer concatenates descriptors in array order.
//
// Ptr is kept as unsafe.Pointer (not uintptr) so the referenced object stays
// reachable for the lifetime of the descriptor array.
type Descriptor struct {
	Ptr  unsafe.Pointer
	Size int
}

// Addr returns the raw address the descriptor points at.
func (d Descriptor) Addr() uintptr {
	return uintptr(d.Ptr)
}

// Bytes views the referenced memory. It does not copy.
func (d Descriptor) Bytes() []byte {
	if d.Ptr == nil || d.Size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(d.Ptr), d.Size)
}

// TotalSize sums the sizes of descs.
func TotalSize(descs []Descriptor) int {
	n := 0
	for _, d := range descs {
		n += d.Size
	}
	return n
}

// AppendRecord appends the bytes referenced by descs to dst, in order.
func AppendRecord(dst []byte, descs []Descriptor) []byte {
	for _, d := range descs {
		dst = append(dst, d.Bytes()...)
	}
	return dst
}
