package utils

import (
	"math/bits"
	"sync"
)

// MinBufferSize is the first size class and the starting size of a grown buffer.
const MinBufferSize = 64

var BufferSizeClass = [...]int{64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

func SizeIndex(n int) int {
	if n <= 0 || n > 32768 {
		return -1
	}
	idx := bits.Len(uint(n))
	if idx < 7 {
		return 0
	}
	if n&(n-1) == 0 {
		return idx - 7
	}
	return idx - 6
}

// GrowSize doubles from current (or MinBufferSize when current is smaller)
// until the result is at least required. It returns -1 on overflow.
func GrowSize(current, required int) int {
	size := current
	if size < MinBufferSize {
		size = MinBufferSize
	}
	for size < required {
		if size > (1<<(bits.UintSize-2))-1 {
			return -1
		}
		size *= 2
	}
	return size
}

type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return &bp
}

// Acquire returns a buffer of at least n bytes.
func (bp *BufferPool) Acquire(n int) []byte {
	idx := SizeIndex(n)
	if idx < 0 {
		return make([]byte, n)
	}
	bufPtr := bp.pools[idx].Get().(*[]byte)
	return (*bufPtr)[:n]
}

// AcquireCap returns a buffer whose length is its full capacity, at least n.
func (bp *BufferPool) AcquireCap(n int) []byte {
	buf := bp.Acquire(n)
	return buf[:cap(buf)]
}

// Grow returns a buffer able to hold required bytes with the first used bytes
// of buf preserved. The capacity doubles from MinBufferSize; buf is released
// when it is replaced. The second result is false when the size overflows.
func (bp *BufferPool) Grow(buf []byte, used, required int) ([]byte, bool) {
	if buf != nil && cap(buf) >= required {
		return buf[:cap(buf)], true
	}
	size := GrowSize(cap(buf), required)
	if size < 0 {
		return buf, false
	}
	nb := bp.AcquireCap(size)
	if buf != nil {
		copy(nb, buf[:used])
		bp.Release(buf)
	}
	return nb, true
}

// Release returns the buffer to its pool if size matches a class.
func (bp *BufferPool) Release(buf []byte) {
	c := cap(buf)
	if c&(c-1) != 0 || c < 64 || c > 32768 {
		return // not a valid class
	}
	idx := bits.Len(uint(c)) - 7
	if BufferSizeClass[idx] == c {
		buf = buf[:c]
		bp.pools[idx].Put(&buf)
	}

}
