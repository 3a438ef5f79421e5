package access

import "sync"

var collectorPool = sync.Pool{
	New: func() interface{} {
		return NewCollector()
	},
}

// GetCollector leases a disabled collector from the pool.
func GetCollector() *Collector {
	c := collectorPool.Get().(*Collector)
	c.Disable()
	return c
}

// ReleaseCollector disables c and returns it to the pool. Pins taken while
// it was enabled are untouched.
func ReleaseCollector(c *Collector) {
	c.Disable()
	collectorPool.Put(c)
}

// WithCollector leases a collector for the duration of fn and returns it on
// every exit path, including a panic in fn.
func WithCollector(fn func(c *Collector) error) error {
	c := GetCollector()
	defer ReleaseCollector(c)
	return fn(c)
}
