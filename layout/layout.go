package layout

import (
	"math"
	"math/bits"
	"reflect"
	"unsafe"

	"github.com/wippyai/opaque/errors"
)

// MaxBytes is the largest object size a single allocation may describe.
const MaxBytes = uintptr(math.MaxInt)

// Layout is the size and alignment of an element.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// New validates and returns a layout.
func New(size, align uintptr) (Layout, error) {
	if align == 0 || bits.OnesCount64(uint64(align)) != 1 {
		return Layout{}, errors.InvalidLayout(size, align, "align is not a power of two")
	}
	if size%align != 0 {
		return Layout{}, errors.InvalidLayout(size, align, "size is not a multiple of align")
	}
	if size > MaxBytes-(align-1) {
		return Layout{}, errors.InvalidLayout(size, align, "size exceeds addressable range")
	}
	return Layout{Size: size, Align: align}, nil
}

// MustNew is New that panics on an invalid layout.
func MustNew(size, align uintptr) Layout {
	l, err := New(size, align)
	if err != nil {
		panic(err)
	}
	return l
}

// Of returns the layout of T.
func Of[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// Valid reports whether l satisfies the layout invariants.
func (l Layout) Valid() bool {
	_, err := New(l.Size, l.Align)
	return err == nil
}

// IsZeroSize reports whether elements of l occupy no memory.
func (l Layout) IsZeroSize() bool {
	return l.Size == 0
}

// Array returns the layout of n consecutive elements.
func (l Layout) Array(n int) (Layout, error) {
	if n < 0 {
		return Layout{}, errors.CapacityOverflow(errors.PhaseLayout, n, l.Size)
	}
	size, ok := MulOverflow(l.Size, uintptr(n))
	if !ok || size > MaxBytes-(l.Align-1) {
		return Layout{}, errors.CapacityOverflow(errors.PhaseLayout, n, l.Size)
	}
	return Layout{Size: size, Align: l.Align}, nil
}

// MaxElems returns the largest element count whose array layout is valid.
func (l Layout) MaxElems() int {
	if l.Size == 0 {
		return math.MaxInt
	}
	return int((MaxBytes - (l.Align - 1)) / l.Size)
}

var zeroBase uint64

// Dangling returns a non-nil pointer for zero-size storage. It must never be
// dereferenced for more than zero bytes.
func Dangling() unsafe.Pointer {
	return unsafe.Pointer(&zeroBase)
}

// HasPointers reports whether values of t contain Go pointers the garbage
// collector must trace.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && HasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
