package blob

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/opaque/alloc"
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
	"github.com/wippyai/opaque/proj"
	"github.com/wippyai/opaque/typeid"
)

// Typed is a Buffer of T elements. It has the same memory layout as Buffer
// and converts to and from it without copying.
type Typed[T any] struct {
	raw Buffer
}

type dropper interface {
	Drop()
}

// New returns an empty buffer of T allocating from h. If *T has a Drop
// method it becomes the destructor. Types containing Go pointers are
// rejected with errors.KindUnsupported.
func New[T any](h alloc.Erased) (*Typed[T], error) {
	return NewTypedWithConfig[T](h, nil)
}

// NewTypedWithConfig is New with explicit configuration.
func NewTypedWithConfig[T any](h alloc.Erased, cfg *Config) (*Typed[T], error) {
	rt := reflect.TypeFor[T]()
	if layout.HasPointers(rt) {
		return nil, errors.New(errors.PhaseBuffer, errors.KindUnsupported).
			Got(rt.String()).
			Detail("element type contains Go pointers").
			Build()
	}

	var d Destructor
	if _, ok := any(new(T)).(dropper); ok {
		d = func(p unsafe.Pointer) {
			any((*T)(p)).(dropper).Drop()
		}
	}
	b := newBuffer(h, layout.Of[T](), d, typeid.Of[T](), cfg)
	return (*Typed[T])(unsafe.Pointer(b)), nil
}

// TryAs returns b viewed as a buffer of T. It fails with a
// *proj.MismatchError unless b was created for T.
func TryAs[T any](b *Buffer) (*Typed[T], error) {
	if want := typeid.Of[T](); b.elem != want {
		return nil, &proj.MismatchError{Want: want, Got: b.elem}
	}
	return (*Typed[T])(unsafe.Pointer(b)), nil
}

// As is TryAs that panics on mismatch.
func As[T any](b *Buffer) *Typed[T] {
	t, err := TryAs[T](b)
	if err != nil {
		panic(err)
	}
	return t
}

// Erase returns the buffer as a Buffer sharing t's memory.
func (t *Typed[T]) Erase() *Buffer {
	return &t.raw
}

func (t *Typed[T]) Len() int { return t.raw.len }

func (t *Typed[T]) Cap() int { return t.raw.cap }

func (t *Typed[T]) Reserve(additional int) error {
	return t.raw.Reserve(additional)
}

// Push appends v.
func (t *Typed[T]) Push(v T) error {
	return t.raw.PushRaw(unsafe.Pointer(&v))
}

// Get returns a copy of the element at i.
func (t *Typed[T]) Get(i int) T {
	return *(*T)(t.raw.At(i))
}

// Ptr returns a pointer to the element at i, valid until the buffer grows.
func (t *Typed[T]) Ptr(i int) *T {
	return (*T)(t.raw.At(i))
}

// Set replaces the element at i, destroying the old one. If the destructor
// panics, v is already stored.
func (t *Typed[T]) Set(i int, v T) {
	p := t.Ptr(i)
	old := *p
	*p = v
	if t.raw.drop != nil {
		t.raw.drop(unsafe.Pointer(&old))
	}
}

// ReplaceInsert stores v at i, destroying the old element, or appends it
// when i == Len.
func (t *Typed[T]) ReplaceInsert(i int, v T) error {
	return t.raw.ReplaceInsertRaw(i, unsafe.Pointer(&v))
}

// SwapRemove removes and returns the element at i, moving the last element
// into its place.
func (t *Typed[T]) SwapRemove(i int) T {
	var v T
	t.raw.SwapRemoveRaw(i, unsafe.Pointer(&v))
	return v
}

// ShiftRemove removes and returns the element at i, keeping order.
func (t *Typed[T]) ShiftRemove(i int) T {
	var v T
	t.raw.ShiftRemoveRaw(i, unsafe.Pointer(&v))
	return v
}

// Slice returns the elements as a slice sharing the buffer's memory. It is
// invalidated by any operation that grows the buffer.
func (t *Typed[T]) Slice() []T {
	if t.raw.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(t.raw.ptr), t.raw.len)
}

func (t *Typed[T]) Truncate(n int) { t.raw.Truncate(n) }

func (t *Typed[T]) Clear() { t.raw.Clear() }

func (t *Typed[T]) Drop() { t.raw.Drop() }
