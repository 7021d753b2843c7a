package blob

import (
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/opaque/alloc"
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/growth"
	"github.com/wippyai/opaque/hashing"
	"github.com/wippyai/opaque/layout"
	"github.com/wippyai/opaque/typeid"
)

// Destructor releases whatever an element owns. It receives a pointer to the
// element's bytes and must not retain it.
type Destructor func(p unsafe.Pointer)

// Buffer is a growable array of elements described by a layout.
//
// Slots [0, Len) hold initialized elements; slots [Len, Cap) are
// uninitialized.
type Buffer struct {
	ptr   unsafe.Pointer
	cap   int
	len   int
	lay   layout.Layout
	drop  Destructor
	alloc alloc.Erased
	elem  typeid.ID
	grow  growth.Policy
}

// NewIn returns an empty buffer that allocates from h. A zero h means
// alloc.Default(). No memory is allocated until the first element is
// added. d may be nil.
func NewIn(h alloc.Erased, l layout.Layout, d Destructor) *Buffer {
	return NewWithConfig(h, l, d, nil)
}

// NewWithConfig is NewIn with explicit configuration. A nil cfg means
// DefaultConfig().
func NewWithConfig(h alloc.Erased, l layout.Layout, d Destructor, cfg *Config) *Buffer {
	return newBuffer(h, l, d, typeid.ID{}, cfg)
}

func newBuffer(h alloc.Erased, l layout.Layout, d Destructor, elem typeid.ID, cfg *Config) *Buffer {
	if !l.Valid() {
		panic(errors.InvalidLayout(l.Size, l.Align, "buffer element layout"))
	}
	if h.IsZero() {
		h = alloc.Default()
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}

	b := &Buffer{lay: l, drop: d, alloc: h, elem: elem, grow: c.Growth}
	if l.IsZeroSize() {
		b.ptr = layout.Dangling()
		b.cap = math.MaxInt
	}
	return b
}

// Len returns the number of initialized elements.
func (b *Buffer) Len() int { return b.len }

// Cap returns the number of elements that fit without reallocating.
func (b *Buffer) Cap() int { return b.cap }

// Layout returns the element layout.
func (b *Buffer) Layout() layout.Layout { return b.lay }

// Allocator returns the handle the buffer allocates from.
func (b *Buffer) Allocator() alloc.Erased { return b.alloc }

// Elem returns the element identity, or the zero ID for buffers built with
// NewIn.
func (b *Buffer) Elem() typeid.ID { return b.elem }

func (b *Buffer) slot(i int) unsafe.Pointer {
	return unsafe.Add(b.ptr, uintptr(i)*b.lay.Size)
}

// move copies n elements from src to dst. The ranges may overlap.
func (b *Buffer) move(dst, src unsafe.Pointer, n int) {
	size := uintptr(n) * b.lay.Size
	if size == 0 || dst == src {
		return
	}
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}

func (b *Buffer) checkIndex(i, length int) {
	if i < 0 || i >= length {
		panic(errors.OutOfBounds(errors.PhaseBuffer, i, length))
	}
}

// Reserve makes room for at least additional more elements, growing
// geometrically. On error the buffer is unchanged.
func (b *Buffer) Reserve(additional int) error {
	return b.reserve(additional, false)
}

// ReserveExact makes room for exactly additional more elements when the
// buffer has to grow.
func (b *Buffer) ReserveExact(additional int) error {
	return b.reserve(additional, true)
}

func (b *Buffer) reserve(additional int, exact bool) error {
	if additional <= b.cap-b.len {
		return nil
	}
	if additional > math.MaxInt-b.len {
		return errors.CapacityOverflow(errors.PhaseGrow, additional, b.lay.Size)
	}
	required := b.len + additional

	var next int
	var err error
	if exact {
		next, err = b.grow.Exact(b.cap, required, b.lay)
	} else {
		next, err = b.grow.Next(b.cap, required, b.lay)
	}
	if err != nil {
		return err
	}
	return b.realloc(next)
}

// realloc moves the buffer to a block of newCap elements. newCap must not be
// below len. The buffer is unchanged on error.
func (b *Buffer) realloc(newCap int) error {
	newL, err := b.lay.Array(newCap)
	if err != nil {
		return err
	}
	oldCap := b.cap

	if oldCap == 0 {
		p, err := b.alloc.Allocate(newL)
		if err != nil {
			return err
		}
		b.ptr, b.cap = p, newCap
		b.logRealloc(oldCap, newCap, false)
		return nil
	}

	oldL, _ := b.lay.Array(oldCap)
	if newCap == 0 {
		b.alloc.Deallocate(b.ptr, oldL)
		b.ptr, b.cap = nil, 0
		b.logRealloc(oldCap, newCap, false)
		return nil
	}
	if b.alloc.Resize(b.ptr, oldL, newL) {
		b.cap = newCap
		b.logRealloc(oldCap, newCap, true)
		return nil
	}

	p, err := b.alloc.Allocate(newL)
	if err != nil {
		return err
	}
	b.move(p, b.ptr, b.len)
	b.alloc.Deallocate(b.ptr, oldL)
	b.ptr, b.cap = p, newCap
	b.logRealloc(oldCap, newCap, false)
	return nil
}

func (b *Buffer) logRealloc(from, to int, inPlace bool) {
	if ce := Logger().Check(zap.DebugLevel, "buffer reallocated"); ce != nil {
		ce.Write(
			zap.Stringer("elem", b.elem),
			zap.Int("from", from),
			zap.Int("to", to),
			zap.Bool("in_place", inPlace),
		)
	}
}

// ShrinkToFit releases unused capacity.
func (b *Buffer) ShrinkToFit() error {
	if b.lay.IsZeroSize() || b.cap == b.len {
		return nil
	}
	return b.realloc(b.len)
}

// PushRaw appends the element whose bytes start at src. The buffer takes
// ownership of the element. src may point into the buffer itself.
func (b *Buffer) PushRaw(src unsafe.Pointer) error {
	off, inside := b.offsetOf(src)
	if err := b.reserve(1, false); err != nil {
		return err
	}
	if inside {
		src = unsafe.Add(b.ptr, off)
	}
	b.move(b.slot(b.len), src, 1)
	b.len++
	return nil
}

// offsetOf reports whether p points into the initialized elements and its
// byte offset from the start of the block.
func (b *Buffer) offsetOf(p unsafe.Pointer) (uintptr, bool) {
	n := uintptr(b.len) * b.lay.Size
	if n == 0 || uintptr(p) < uintptr(b.ptr) {
		return 0, false
	}
	off := uintptr(p) - uintptr(b.ptr)
	return off, off < n
}

// ReplaceInsertRaw stores the element at src at index. When index == Len
// it appends. Otherwise the element previously at index is destroyed after
// the new one is in place; if its destructor panics, the new element stays
// owned and Len is unchanged.
func (b *Buffer) ReplaceInsertRaw(index int, src unsafe.Pointer) error {
	if index < 0 || index > b.len {
		panic(errors.OutOfBounds(errors.PhaseBuffer, index, b.len))
	}
	if index == b.len {
		return b.PushRaw(src)
	}
	if b.drop == nil {
		b.move(b.slot(index), src, 1)
		return nil
	}

	// The old element is parked in the first spare slot while the new
	// one is written, or on the Go heap when the buffer is full so that a
	// replacement never grows it.
	spare := b.slot(b.len)
	if b.len == b.cap {
		p, err := alloc.Global{}.Allocate(b.lay)
		if err != nil {
			return err
		}
		spare = p
	}
	b.move(spare, b.slot(index), 1)
	b.move(b.slot(index), src, 1)
	b.drop(spare)
	return nil
}

// Truncate destroys the elements at [n, Len) in increasing index order and
// sets Len to n. It does nothing when n >= Len.
//
// If a destructor panics at index k, elements [n, k] count as destroyed and
// the elements after k are moved down to n, so they stay live and are
// destroyed exactly once by a later call.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		panic(errors.OutOfBounds(errors.PhaseBuffer, n, b.len))
	}
	old := b.len
	if n >= old {
		return
	}
	b.len = n
	if b.drop == nil {
		return
	}

	k := n
	defer func() {
		if k >= old {
			return
		}
		tail := old - k - 1
		b.move(b.slot(n), b.slot(k+1), tail)
		b.len = n + tail
		if ce := Logger().Check(zap.DebugLevel, "destructor panicked during truncate"); ce != nil {
			ce.Write(zap.Stringer("elem", b.elem), zap.Int("index", k), zap.Int("survivors", tail))
		}
	}()
	for ; k < old; k++ {
		b.drop(b.slot(k))
	}
}

// ShiftRemoveRaw moves the element at index into dst and closes the gap,
// keeping order. The element's destructor is not run. dst must have room
// for one element.
func (b *Buffer) ShiftRemoveRaw(index int, dst unsafe.Pointer) {
	b.checkIndex(index, b.len)
	b.move(dst, b.slot(index), 1)
	b.move(b.slot(index), b.slot(index+1), b.len-index-1)
	b.len--
}

// SwapRemoveRaw moves the element at index into dst and fills the gap with
// the last element. The element's destructor is not run. dst must have room
// for one element.
func (b *Buffer) SwapRemoveRaw(index int, dst unsafe.Pointer) {
	b.checkIndex(index, b.len)
	b.move(dst, b.slot(index), 1)
	if last := b.len - 1; index != last {
		b.move(b.slot(index), b.slot(last), 1)
	}
	b.len--
}

// Clear destroys every element.
func (b *Buffer) Clear() {
	b.Truncate(0)
}

// Drop destroys every element and releases the memory. After a destructor
// panic it may be called again; the memory is released once all elements
// are destroyed.
func (b *Buffer) Drop() {
	b.Truncate(0)
	if b.lay.IsZeroSize() || b.cap == 0 {
		return
	}
	l, _ := b.lay.Array(b.cap)
	b.alloc.Deallocate(b.ptr, l)
	b.ptr, b.cap = nil, 0
}

// At returns a pointer to the element at index. It is invalidated by any
// operation that grows the buffer.
func (b *Buffer) At(index int) unsafe.Pointer {
	b.checkIndex(index, b.len)
	return b.slot(index)
}

// Bytes returns the initialized elements as bytes, sharing the buffer's
// memory.
func (b *Buffer) Bytes() []byte {
	n := uintptr(b.len) * b.lay.Size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), n)
}

// Hash hashes the element bytes with h. A zero h means hashing.Default().
func (b *Buffer) Hash(h hashing.Erased) uint64 {
	if h.IsZero() {
		h = hashing.Default()
	}
	return h.Sum64(b.Bytes())
}
