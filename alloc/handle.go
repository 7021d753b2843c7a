package alloc

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
	"github.com/wippyai/opaque/proj"
	"github.com/wippyai/opaque/typeid"
)

// vtable dispatches to a boxed allocator whose type is not statically known.
type vtable struct {
	allocate   func(a unsafe.Pointer, l layout.Layout) (unsafe.Pointer, error)
	deallocate func(a unsafe.Pointer, p unsafe.Pointer, l layout.Layout)
	resize     func(a unsafe.Pointer, p unsafe.Pointer, old, new layout.Layout) bool
	clone      func(a unsafe.Pointer) unsafe.Pointer
	shared     bool
}

func vtableFor[A Allocator]() *vtable {
	vt := &vtable{
		allocate: func(a unsafe.Pointer, l layout.Layout) (unsafe.Pointer, error) {
			return (*(*A)(a)).Allocate(l)
		},
		deallocate: func(a unsafe.Pointer, p unsafe.Pointer, l layout.Layout) {
			(*(*A)(a)).Deallocate(p, l)
		},
		clone: func(a unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(cloneOf((*A)(a)))
		},
	}

	var zero A
	if _, ok := any(zero).(Resizer); ok {
		vt.resize = func(a unsafe.Pointer, p unsafe.Pointer, old, new layout.Layout) bool {
			return any(*(*A)(a)).(Resizer).Resize(p, old, new)
		}
	}
	_, vt.shared = any(zero).(Shared)
	return vt
}

func cloneOf[A any](src *A) *A {
	dst := new(A)
	if c, ok := any(*src).(Cloner[A]); ok {
		*dst = c.Clone()
	} else {
		*dst = *src
	}
	return dst
}

// Typed owns an allocator of static type A.
type Typed[A Allocator] struct {
	inner proj.Typed[A]
	vt    *vtable
}

// Erased owns an allocator whose type is only known at runtime.
type Erased struct {
	inner proj.Erased
	vt    *vtable
}

// NewHandle boxes a.
func NewHandle[A Allocator](a A) Typed[A] {
	return Typed[A]{inner: proj.New(a), vt: vtableFor[A]()}
}

// Erase boxes a and hides its type.
func Erase[A Allocator](a A) Erased {
	return NewHandle(a).Erase()
}

// Default returns an erased Global allocator.
func Default() Erased {
	return Erase(Global{})
}

// TryAs returns a view of e as Typed[A] sharing e's memory. On mismatch it
// returns a *proj.MismatchError and leaves e untouched.
func TryAs[A Allocator](e *Erased) (*Typed[A], error) {
	if err := proj.Check(&e.inner, typeid.Of[A]()); err != nil {
		return nil, err
	}
	return (*Typed[A])(unsafe.Pointer(e)), nil
}

// As is TryAs that panics on mismatch.
func As[A Allocator](e *Erased) *Typed[A] {
	t, err := TryAs[A](e)
	if err != nil {
		panic(err)
	}
	return t
}

// TryProject converts e into Typed[A].
func TryProject[A Allocator](e Erased) (Typed[A], error) {
	if err := proj.Check(&e.inner, typeid.Of[A]()); err != nil {
		return Typed[A]{}, err
	}
	return *(*Typed[A])(unsafe.Pointer(&e)), nil
}

// Project is TryProject that panics on mismatch.
func Project[A Allocator](e Erased) Typed[A] {
	t, err := TryProject[A](e)
	if err != nil {
		panic(err)
	}
	return t
}

// Allocator returns the boxed allocator.
func (t Typed[A]) Allocator() *A {
	return t.inner.Ptr()
}

func (t Typed[A]) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return layout.Dangling(), nil
	}
	return (*t.inner.Ptr()).Allocate(l)
}

func (t Typed[A]) Deallocate(p unsafe.Pointer, l layout.Layout) {
	if l.Size == 0 {
		return
	}
	(*t.inner.Ptr()).Deallocate(p, l)
}

// Resize resizes in place when A implements Resizer.
func (t Typed[A]) Resize(p unsafe.Pointer, old, new layout.Layout) bool {
	r, ok := any(*t.inner.Ptr()).(Resizer)
	return ok && r.Resize(p, old, new)
}

// Clone returns a handle owning a clone of the allocator.
func (t Typed[A]) Clone() Typed[A] {
	return Typed[A]{inner: proj.New(*cloneOf(t.inner.Ptr())), vt: t.vt}
}

// Shared reports whether A is safe for concurrent use.
func (t Typed[A]) Shared() bool {
	return t.vt.shared
}

func (t Typed[A]) Type() typeid.ID {
	return t.inner.Type()
}

// Erase hides A. The boxed allocator is not copied.
func (t Typed[A]) Erase() Erased {
	return Erased{inner: t.inner.Erase(), vt: t.vt}
}

// IsZero reports whether e owns no allocator.
func (e Erased) IsZero() bool {
	return e.vt == nil
}

func (e Erased) Type() typeid.ID {
	return e.inner.Type()
}

func (e Erased) Shared() bool {
	return e.vt != nil && e.vt.shared
}

// table returns the vtable, panicking on the zero handle. Buffers and
// wrappers map a zero handle to Default() before using it.
func (e Erased) table() *vtable {
	if e.vt == nil {
		panic(errors.Unsupported(errors.PhaseAlloc, "zero allocator handle"))
	}
	return e.vt
}

func (e Erased) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return layout.Dangling(), nil
	}
	p, err := e.table().allocate(e.inner.Pointer(), l)
	if err != nil {
		if ce := Logger().Check(zap.DebugLevel, "allocation failed"); ce != nil {
			ce.Write(
				zap.Stringer("allocator", e.Type()),
				zap.Uintptr("size", l.Size),
				zap.Uintptr("align", l.Align),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return p, nil
}

func (e Erased) Deallocate(p unsafe.Pointer, l layout.Layout) {
	if l.Size == 0 {
		return
	}
	e.table().deallocate(e.inner.Pointer(), p, l)
}

// Resize resizes in place when the allocator implements Resizer.
func (e Erased) Resize(p unsafe.Pointer, old, new layout.Layout) bool {
	vt := e.table()
	if vt.resize == nil {
		return false
	}
	return vt.resize(e.inner.Pointer(), p, old, new)
}

// Clone returns a handle owning a clone of the allocator, without naming
// its type. The clone of a zero handle is a zero handle.
func (e Erased) Clone() Erased {
	if e.vt == nil {
		return Erased{}
	}
	return Erased{
		inner: proj.FromPointer(e.vt.clone(e.inner.Pointer()), e.inner.Type()),
		vt:    e.vt,
	}
}
