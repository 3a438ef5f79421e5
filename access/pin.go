package access

import (
	"runtime"
	"unsafe"
)

// Pin freezes the object behind one top-level descriptor. Pins live in
// caller-owned storage and stay active after Disable: release them only once
// the event write that reads the descriptors has returned.
type Pin struct {
	pinner runtime.Pinner
	addr   unsafe.Pointer
	size   int
	owned  []byte // pooled buffer handed to the pin, returned on Release
}

func (p *Pin) pin(addr unsafe.Pointer, size int, owned []byte) {
	p.pinner.Pin(addr)
	p.addr = addr
	p.size = size
	p.owned = owned
}

// Active reports whether the pin holds a frozen address.
func (p *Pin) Active() bool { return p.addr != nil }

// Addr returns the frozen address.
func (p *Pin) Addr() uintptr { return uintptr(p.addr) }

// Size returns the number of bytes the matching descriptor covers.
func (p *Pin) Size() int { return p.size }

// Release unpins the object and recycles any buffer the collector handed over.
// Releasing an inactive pin is a no-op.
func (p *Pin) Release() {
	if p.addr == nil {
		return
	}
	p.pinner.Unpin()
	if p.owned != nil {
		bufPool.Release(p.owned)
	}
	*p = Pin{}
}

// ReleasePins releases every active pin in pins.
func ReleasePins(pins []Pin) {
	for i := range pins {
		pins[i].Release()
	}
}
