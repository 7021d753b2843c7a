package linear

import (
	"cmp"
	"context"
	"math"
	"slices"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/opaque/alloc"
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
)

// PageSize is the WebAssembly page size.
const PageSize = 65536

// Memories of 65536 pages have a byte size that does not fit in uint32.
const maxPages = 65535

// Offsets below heapStart are never handed out, so offset 0 stays a null
// guest pointer.
const heapStart = 16

const memoryName = "memory"

// Config holds configuration for allocator creation.
type Config struct {
	// InitialPages is the memory size at creation. 0 means 1.
	InitialPages uint32 `envconfig:"INITIAL_PAGES"`

	// MaxPages caps memory growth. The whole range is reserved at creation.
	// 0 means 256 (16MB).
	MaxPages uint32 `envconfig:"MAX_PAGES"`
}

// DefaultConfig returns the configuration used for a nil *Config.
func DefaultConfig() Config {
	return Config{InitialPages: 1, MaxPages: 256}
}

// Allocator hands out blocks of one linear memory. Copies and clones share
// the memory. Not safe for concurrent use.
type Allocator struct {
	h *heap
}

var (
	_ alloc.Allocator         = Allocator{}
	_ alloc.Resizer           = Allocator{}
	_ alloc.Cloner[Allocator] = Allocator{}
)

type span struct {
	off  uint32
	size uint32
}

type heap struct {
	rt     wazero.Runtime
	mem    api.Memory
	base   unsafe.Pointer
	top    uint32
	free   []span // sorted by offset, never adjacent
	closed bool
}

// New creates a runtime with one memory and returns an allocator over it.
// A nil cfg means DefaultConfig().
func New(ctx context.Context, cfg *Config) (Allocator, error) {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.InitialPages > 0 {
			c.InitialPages = cfg.InitialPages
		}
		if cfg.MaxPages > 0 {
			c.MaxPages = cfg.MaxPages
		}
	}
	if c.MaxPages > maxPages || c.InitialPages > c.MaxPages {
		return Allocator{}, errors.New(errors.PhaseAlloc, errors.KindUnsupported).
			Detail("page limits %d..%d out of range", c.InitialPages, c.MaxPages).
			Build()
	}

	rtCfg := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(c.MaxPages).
		WithMemoryCapacityFromMax(true)
	rt := wazero.NewRuntimeWithConfig(ctx, rtCfg)

	mod, err := rt.Instantiate(ctx, memoryModule(memoryName, c.InitialPages, c.MaxPages))
	if err != nil {
		_ = rt.Close(ctx)
		return Allocator{}, errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "instantiate memory module")
	}
	mem := mod.ExportedMemory(memoryName)
	if mem == nil {
		_ = rt.Close(ctx)
		return Allocator{}, errors.New(errors.PhaseAlloc, errors.KindAllocation).
			Detail("module exports no %q", memoryName).
			Build()
	}

	h := &heap{rt: rt, mem: mem, top: heapStart}
	h.base = h.data()
	return Allocator{h: h}, nil
}

func (h *heap) data() unsafe.Pointer {
	buf, _ := h.mem.Read(0, h.mem.Size())
	return unsafe.Pointer(unsafe.SliceData(buf))
}

// Memory returns the wazero memory backing a.
func (a Allocator) Memory() api.Memory {
	return a.h.mem
}

// Offset returns the guest address of p.
func (a Allocator) Offset(p unsafe.Pointer) (uint32, bool) {
	base := uintptr(a.h.base)
	if uintptr(p) < base || uintptr(p)-base >= uintptr(a.h.mem.Size()) {
		return 0, false
	}
	return uint32(uintptr(p) - base), true
}

// Pointer returns the host address of guest offset off.
func (a Allocator) Pointer(off uint32) (unsafe.Pointer, bool) {
	if off >= a.h.mem.Size() {
		return nil, false
	}
	return unsafe.Add(a.h.base, off), true
}

func (a Allocator) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	h := a.h
	if h.closed {
		return nil, errors.New(errors.PhaseAlloc, errors.KindClosed).Detail("linear allocator closed").Build()
	}
	if l.Size == 0 {
		return layout.Dangling(), nil
	}
	if l.Size > math.MaxUint32 {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
	}
	size := uint32(l.Size)

	if off, ok := h.takeFree(size, l.Align); ok {
		return unsafe.Add(h.base, off), nil
	}

	start, ok := h.alignOff(h.top, l.Align)
	end := uint64(start) + uint64(size)
	if !ok || !h.ensure(end) {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
	}
	oldTop := h.top
	h.top = uint32(end)
	if start > oldTop {
		h.release(oldTop, start-oldTop)
	}
	return unsafe.Add(h.base, start), nil
}

func (a Allocator) Deallocate(p unsafe.Pointer, l layout.Layout) {
	h := a.h
	if h.closed || l.Size == 0 {
		return
	}
	off, ok := a.Offset(p)
	if !ok {
		panic(errors.New(errors.PhaseAlloc, errors.KindOutOfBounds).
			Detail("pointer %p not in linear memory", p).
			Build())
	}
	h.release(off, uint32(l.Size))
}

// Resize shrinks any block in place. It grows the block at the heap top, or
// a block followed by a large enough free span.
func (a Allocator) Resize(p unsafe.Pointer, old, new layout.Layout) bool {
	h := a.h
	if h.closed || old.Size == 0 || new.Size == 0 {
		return false
	}
	off, ok := a.Offset(p)
	if !ok || uint64(off)+uint64(new.Size) > math.MaxUint32 {
		return false
	}
	oldEnd := off + uint32(old.Size)
	newEnd := off + uint32(new.Size)

	if new.Size <= old.Size {
		if oldEnd == h.top {
			h.top = newEnd
		} else if newEnd < oldEnd {
			h.release(newEnd, oldEnd-newEnd)
		}
		return true
	}

	if oldEnd == h.top {
		if !h.ensure(uint64(newEnd)) {
			return false
		}
		h.top = newEnd
		return true
	}

	i, found := h.find(oldEnd)
	if !found || h.free[i].size < newEnd-oldEnd {
		return false
	}
	if rest := h.free[i].size - (newEnd - oldEnd); rest > 0 {
		h.free[i] = span{off: newEnd, size: rest}
	} else {
		h.free = slices.Delete(h.free, i, i+1)
	}
	return true
}

// Clone returns a, sharing its memory.
func (a Allocator) Clone() Allocator {
	return a
}

// Close releases the runtime. Pointers into the memory are invalid afterwards.
func (a Allocator) Close(ctx context.Context) error {
	if a.h.closed {
		return nil
	}
	a.h.closed = true
	a.h.free = nil
	return a.h.rt.Close(ctx)
}

// alignOff aligns the host address of off and returns the resulting offset.
func (h *heap) alignOff(off uint32, align uintptr) (uint32, bool) {
	base := uintptr(h.base)
	d := layout.AlignUp(base+uintptr(off), align) - base
	if d > math.MaxUint32 {
		return 0, false
	}
	return uint32(d), true
}

// ensure grows the memory until it holds end bytes.
func (h *heap) ensure(end uint64) bool {
	size := uint64(h.mem.Size())
	if end <= size {
		return true
	}
	pages := (end - size + PageSize - 1) / PageSize
	if pages > maxPages {
		return false
	}
	prev, ok := h.mem.Grow(uint32(pages))
	if !ok {
		return false
	}
	if ce := alloc.Logger().Check(zap.DebugLevel, "linear memory grown"); ce != nil {
		ce.Write(zap.Uint32("from_pages", prev), zap.Uint64("by_pages", pages))
	}
	if h.data() != h.base {
		panic(errors.New(errors.PhaseAlloc, errors.KindAllocation).
			Detail("linear memory moved on grow").
			Build())
	}
	return true
}

func (h *heap) find(off uint32) (int, bool) {
	return slices.BinarySearchFunc(h.free, off, func(s span, off uint32) int {
		return cmp.Compare(s.off, off)
	})
}

// takeFree carves an aligned block out of the first free span that fits.
func (h *heap) takeFree(size uint32, align uintptr) (uint32, bool) {
	for i, s := range h.free {
		start, ok := h.alignOff(s.off, align)
		if !ok || uint64(start)+uint64(size) > uint64(s.off)+uint64(s.size) {
			continue
		}
		end := start + size
		sEnd := s.off + s.size

		var parts []span
		if start > s.off {
			parts = append(parts, span{off: s.off, size: start - s.off})
		}
		if sEnd > end {
			parts = append(parts, span{off: end, size: sEnd - end})
		}
		h.free = slices.Replace(h.free, i, i+1, parts...)
		return start, true
	}
	return 0, false
}

// release returns [off, off+size) to the free list, merging neighbours and
// lowering the heap top when the span reaches it.
func (h *heap) release(off, size uint32) {
	i, _ := h.find(off)
	h.free = slices.Insert(h.free, i, span{off: off, size: size})

	if i+1 < len(h.free) && h.free[i].off+h.free[i].size == h.free[i+1].off {
		h.free[i].size += h.free[i+1].size
		h.free = slices.Delete(h.free, i+1, i+2)
	}
	if i > 0 && h.free[i-1].off+h.free[i-1].size == h.free[i].off {
		h.free[i-1].size += h.free[i].size
		h.free = slices.Delete(h.free, i, i+1)
	}

	if last := h.free[len(h.free)-1]; last.off+last.size == h.top {
		h.top = last.off
		h.free = h.free[:len(h.free)-1]
	}
}
