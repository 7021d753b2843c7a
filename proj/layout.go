package proj

import "unsafe"

// The element type only appears behind a pointer, so one instantiation
// stands for all of them.
type shape = Typed[struct{}]

const (
	typedSize   = unsafe.Sizeof(shape{})
	erasedSize  = unsafe.Sizeof(Erased{})
	typedAlign  = unsafe.Alignof(shape{})
	erasedAlign = unsafe.Alignof(Erased{})
	typedPtr    = unsafe.Offsetof(shape{}.ptr)
	erasedPtr   = unsafe.Offsetof(Erased{}.ptr)
	typedID     = unsafe.Offsetof(shape{}.id)
	erasedID    = unsafe.Offsetof(Erased{}.id)
)

// Compile-time shape equality. Either subtraction overflows uintptr when
// the two sides differ.
var (
	_ [typedSize - erasedSize]struct{}
	_ [erasedSize - typedSize]struct{}
	_ [typedAlign - erasedAlign]struct{}
	_ [erasedAlign - typedAlign]struct{}
	_ [typedPtr - erasedPtr]struct{}
	_ [erasedPtr - typedPtr]struct{}
	_ [typedID - erasedID]struct{}
	_ [erasedID - typedID]struct{}
)
