package alloc

import (
	"unsafe"

	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
)

type budget struct {
	max  uintptr
	used uintptr
}

// Limit forwards to another allocator until a byte budget is spent, then
// fails with errors.KindAllocation. Clones share the budget.
type Limit struct {
	inner  Erased
	budget *budget
}

var (
	_ Allocator     = Limit{}
	_ Resizer       = Limit{}
	_ Cloner[Limit] = Limit{}
)

// NewLimit wraps inner with a budget of max bytes. A zero inner handle means
// Default().
func NewLimit(inner Erased, max uintptr) Limit {
	if inner.IsZero() {
		inner = Default()
	}
	return Limit{inner: inner, budget: &budget{max: max}}
}

// Used returns the bytes currently allocated through l.
func (l Limit) Used() uintptr {
	return l.budget.used
}

// SetMax changes the budget. Existing blocks stay valid.
func (l Limit) SetMax(max uintptr) {
	l.budget.max = max
}

func (l Limit) fits(n uintptr) bool {
	return n <= l.budget.max && l.budget.used <= l.budget.max-n
}

func (l Limit) Allocate(lay layout.Layout) (unsafe.Pointer, error) {
	if !l.fits(lay.Size) {
		return nil, errors.New(errors.PhaseAlloc, errors.KindAllocation).
			Detail("%d bytes exceed budget (%d of %d used)", lay.Size, l.budget.used, l.budget.max).
			Build()
	}
	p, err := l.inner.Allocate(lay)
	if err != nil {
		return nil, err
	}
	l.budget.used += lay.Size
	return p, nil
}

func (l Limit) Deallocate(p unsafe.Pointer, lay layout.Layout) {
	l.inner.Deallocate(p, lay)
	l.budget.used -= lay.Size
}

func (l Limit) Resize(p unsafe.Pointer, old, new layout.Layout) bool {
	if new.Size > old.Size && !l.fits(new.Size-old.Size) {
		return false
	}
	if !l.inner.Resize(p, old, new) {
		return false
	}
	l.budget.used = l.budget.used - old.Size + new.Size
	return true
}

// Clone clones the wrapped allocator and shares the budget.
func (l Limit) Clone() Limit {
	return Limit{inner: l.inner.Clone(), budget: l.budget}
}
