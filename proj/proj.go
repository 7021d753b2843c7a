package proj

import (
	"unsafe"

	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/typeid"
)

// Typed is the statically typed view of a boxed value.
type Typed[T any] struct {
	ptr *T
	id  typeid.ID
}

// Erased is a boxed value whose static type is only known at runtime.
type Erased struct {
	ptr unsafe.Pointer
	id  typeid.ID
}

// MismatchError is returned when an Erased is projected to the wrong type.
type MismatchError struct {
	Want typeid.ID
	Got  typeid.ID
}

func (e *MismatchError) Error() string {
	return e.Unwrap().Error()
}

// Unwrap exposes the structured error so errors.Is(err, errors.ErrTypeMismatch) holds.
func (e *MismatchError) Unwrap() error {
	return errors.TypeMismatch(errors.PhaseProject, e.Want.Name(), e.Got.Name())
}

// New boxes v.
func New[T any](v T) Typed[T] {
	p := new(T)
	*p = v
	return Typed[T]{ptr: p, id: typeid.Of[T]()}
}

// Erase boxes v and hides its type.
func Erase[T any](v T) Erased {
	return From(New(v))
}

// From erases t, re-tagging it with the identity of T.
func From[T any](t Typed[T]) Erased {
	t.id = typeid.Of[T]()
	return *(*Erased)(unsafe.Pointer(&t))
}

// Check returns a *MismatchError unless e holds a value identified by want.
func Check(e *Erased, want typeid.ID) error {
	if e.id != want {
		return &MismatchError{Want: want, Got: e.id}
	}
	return nil
}

// Is reports whether e holds a T.
func Is[T any](e *Erased) bool {
	return e.id == typeid.Of[T]()
}

// TryAs returns a view of e as Typed[T] sharing e's memory.
func TryAs[T any](e *Erased) (*Typed[T], error) {
	if err := Check(e, typeid.Of[T]()); err != nil {
		return nil, err
	}
	return (*Typed[T])(unsafe.Pointer(e)), nil
}

// As is TryAs that panics on mismatch.
func As[T any](e *Erased) *Typed[T] {
	t, err := TryAs[T](e)
	if err != nil {
		panic(err)
	}
	return t
}

// TryInto converts e into Typed[T].
func TryInto[T any](e Erased) (Typed[T], error) {
	if err := Check(&e, typeid.Of[T]()); err != nil {
		return Typed[T]{}, err
	}
	return *(*Typed[T])(unsafe.Pointer(&e)), nil
}

// Into is TryInto that panics on mismatch.
func Into[T any](e Erased) Typed[T] {
	t, err := TryInto[T](e)
	if err != nil {
		panic(err)
	}
	return t
}

// Get returns a copy of the boxed value.
func (t Typed[T]) Get() T {
	return *t.ptr
}

// Ptr returns the boxed value.
func (t Typed[T]) Ptr() *T {
	return t.ptr
}

// Set replaces the boxed value.
func (t Typed[T]) Set(v T) {
	*t.ptr = v
}

// Type returns the identity of T.
func (t Typed[T]) Type() typeid.ID {
	return t.id
}

// Erase is From(t).
func (t Typed[T]) Erase() Erased {
	return From(t)
}

// AsErased returns a view of t as an Erased sharing t's memory.
func (t *Typed[T]) AsErased() *Erased {
	return (*Erased)(unsafe.Pointer(t))
}

// Type returns the identity of the boxed value.
func (e Erased) Type() typeid.ID {
	return e.id
}

// Pointer returns the address of the boxed value.
func (e Erased) Pointer() unsafe.Pointer {
	return e.ptr
}

// IsZero reports whether e holds nothing.
func (e Erased) IsZero() bool {
	return e.ptr == nil && e.id.IsZero()
}

// FromPointer wraps p as an Erased tagged with id. The caller guarantees that
// p points at a value of the type id identifies; type-erased clone functions
// use it to re-box a copy without naming the type.
func FromPointer(p unsafe.Pointer, id typeid.ID) Erased {
	return Erased{ptr: p, id: id}
}
