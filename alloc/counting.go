package alloc

import (
	"unsafe"

	"github.com/wippyai/opaque/layout"
)

// Stats counts allocator traffic.
type Stats struct {
	Allocs    int
	Deallocs  int
	Resizes   int
	Failures  int
	LiveBytes uintptr
	PeakBytes uintptr
}

// Counting forwards to another allocator and counts requests. Clones share
// the counters. Not safe for concurrent use.
type Counting struct {
	inner Erased
	stats *Stats
}

var (
	_ Allocator        = Counting{}
	_ Resizer          = Counting{}
	_ Cloner[Counting] = Counting{}
)

// NewCounting wraps inner. A zero inner handle means Default().
func NewCounting(inner Erased) Counting {
	if inner.IsZero() {
		inner = Default()
	}
	return Counting{inner: inner, stats: &Stats{}}
}

// Stats returns a snapshot of the counters.
func (c Counting) Stats() Stats {
	return *c.stats
}

// Reset zeroes the counters.
func (c Counting) Reset() {
	*c.stats = Stats{}
}

func (c Counting) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	p, err := c.inner.Allocate(l)
	if err != nil {
		c.stats.Failures++
		return nil, err
	}
	c.stats.Allocs++
	c.grow(l.Size)
	return p, nil
}

func (c Counting) Deallocate(p unsafe.Pointer, l layout.Layout) {
	c.inner.Deallocate(p, l)
	c.stats.Deallocs++
	c.stats.LiveBytes -= l.Size
}

func (c Counting) Resize(p unsafe.Pointer, old, new layout.Layout) bool {
	if !c.inner.Resize(p, old, new) {
		return false
	}
	c.stats.Resizes++
	c.stats.LiveBytes -= old.Size
	c.grow(new.Size)
	return true
}

// Clone clones the wrapped allocator and shares the counters.
func (c Counting) Clone() Counting {
	return Counting{inner: c.inner.Clone(), stats: c.stats}
}

func (c Counting) grow(n uintptr) {
	c.stats.LiveBytes += n
	if c.stats.LiveBytes > c.stats.PeakBytes {
		c.stats.PeakBytes = c.stats.LiveBytes
	}
}
