package hashing

import "unsafe"

type shape = Typed[FNV]

var (
	_ [unsafe.Sizeof(shape{}) - unsafe.Sizeof(Erased{})]struct{}
	_ [unsafe.Sizeof(Erased{}) - unsafe.Sizeof(shape{})]struct{}
	_ [unsafe.Offsetof(shape{}.vt) - unsafe.Offsetof(Erased{}.vt)]struct{}
	_ [unsafe.Offsetof(Erased{}.vt) - unsafe.Offsetof(shape{}.vt)]struct{}
)
