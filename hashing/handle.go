package hashing

import (
	"hash"
	"unsafe"

	"github.com/wippyai/opaque/proj"
	"github.com/wippyai/opaque/typeid"
)

type vtable struct {
	newHasher func(b unsafe.Pointer) hash.Hash
	clone     func(b unsafe.Pointer) unsafe.Pointer
}

func vtableFor[B Builder]() *vtable {
	return &vtable{
		newHasher: func(b unsafe.Pointer) hash.Hash {
			return (*(*B)(b)).NewHasher()
		},
		clone: func(b unsafe.Pointer) unsafe.Pointer {
			c := *(*B)(b)
			return unsafe.Pointer(&c)
		},
	}
}

// Typed owns a builder of static type B.
type Typed[B Builder] struct {
	inner proj.Typed[B]
	vt    *vtable
}

// Erased owns a builder whose type is only known at runtime.
type Erased struct {
	inner proj.Erased
	vt    *vtable
}

func NewHandle[B Builder](b B) Typed[B] {
	return Typed[B]{inner: proj.New(b), vt: vtableFor[B]()}
}

func Erase[B Builder](b B) Erased {
	return NewHandle(b).Erase()
}

// Default returns an erased FNV builder.
func Default() Erased {
	return Erase(FNV{})
}

// TryAs returns a view of e as Typed[B] sharing e's memory.
func TryAs[B Builder](e *Erased) (*Typed[B], error) {
	if err := proj.Check(&e.inner, typeid.Of[B]()); err != nil {
		return nil, err
	}
	return (*Typed[B])(unsafe.Pointer(e)), nil
}

func As[B Builder](e *Erased) *Typed[B] {
	t, err := TryAs[B](e)
	if err != nil {
		panic(err)
	}
	return t
}

func TryProject[B Builder](e Erased) (Typed[B], error) {
	if err := proj.Check(&e.inner, typeid.Of[B]()); err != nil {
		return Typed[B]{}, err
	}
	return *(*Typed[B])(unsafe.Pointer(&e)), nil
}

func Project[B Builder](e Erased) Typed[B] {
	t, err := TryProject[B](e)
	if err != nil {
		panic(err)
	}
	return t
}

// Builder returns the boxed builder.
func (t Typed[B]) Builder() *B {
	return t.inner.Ptr()
}

func (t Typed[B]) NewHasher() hash.Hash {
	return (*t.inner.Ptr()).NewHasher()
}

func (t Typed[B]) Sum64(data []byte) uint64 {
	return Sum64(*t.inner.Ptr(), data)
}

func (t Typed[B]) Clone() Typed[B] {
	return NewHandle(*t.inner.Ptr())
}

func (t Typed[B]) Type() typeid.ID {
	return t.inner.Type()
}

func (t Typed[B]) Erase() Erased {
	return Erased{inner: t.inner.Erase(), vt: t.vt}
}

func (e Erased) IsZero() bool {
	return e.vt == nil
}

func (e Erased) Type() typeid.ID {
	return e.inner.Type()
}

func (e Erased) NewHasher() hash.Hash {
	return e.vt.newHasher(e.inner.Pointer())
}

func (e Erased) Sum64(data []byte) uint64 {
	return Sum64(e, data)
}

func (e Erased) Clone() Erased {
	return Erased{
		inner: proj.FromPointer(e.vt.clone(e.inner.Pointer()), e.inner.Type()),
		vt:    e.vt,
	}
}
