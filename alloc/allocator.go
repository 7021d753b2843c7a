package alloc

import (
	"math/bits"
	"unsafe"

	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
)

// Allocator allocates raw memory blocks.
type Allocator interface {
	// Allocate returns a block of at least l.Size bytes aligned to l.Align.
	// The contents are unspecified.
	Allocate(l layout.Layout) (unsafe.Pointer, error)

	// Deallocate releases a block returned by Allocate with the same layout.
	Deallocate(p unsafe.Pointer, l layout.Layout)
}

// Resizer is implemented by allocators that can grow or shrink a block
// without moving it.
type Resizer interface {
	// Resize changes the size of the block at p from old to new in place.
	// Alignment is unchanged. It returns false and leaves the block untouched
	// when the block cannot be resized without moving.
	Resize(p unsafe.Pointer, old, new layout.Layout) bool
}

// Cloner is implemented by allocators whose clone is not a plain copy.
type Cloner[A any] interface {
	Clone() A
}

// Shared marks allocators that are safe for use from several goroutines.
// Handles record it at construction and never widen or narrow it.
type Shared interface {
	SharedAcrossGoroutines()
}

const wordSize = unsafe.Sizeof(uint64(0))

// Largest request Global passes to the runtime.
const maxHeapAlloc = uintptr(1) << min(47, bits.UintSize-1)

// Global allocates from the Go heap. Blocks are kept alive by the pointers
// that reference them, so Deallocate is a no-op.
type Global struct{}

var _ Allocator = Global{}

func (Global) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return layout.Dangling(), nil
	}
	pad := uintptr(0)
	if l.Align > wordSize {
		pad = l.Align - wordSize
	}
	total, ok := layout.AddOverflow(l.Size, pad)
	if !ok || total > maxHeapAlloc {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
	}

	words := make([]uint64, (total+wordSize-1)/wordSize)
	base := unsafe.Pointer(unsafe.SliceData(words))
	return unsafe.Add(base, layout.AlignUp(uintptr(base), l.Align)-uintptr(base)), nil
}

func (Global) Deallocate(unsafe.Pointer, layout.Layout) {}

func (Global) SharedAcrossGoroutines() {}
