package alloc

import "unsafe"

// Typed and Erased are reinterpreted in place by As and Project.
type shape = Typed[Global]

var (
	_ [unsafe.Sizeof(shape{}) - unsafe.Sizeof(Erased{})]struct{}
	_ [unsafe.Sizeof(Erased{}) - unsafe.Sizeof(shape{})]struct{}
	_ [unsafe.Offsetof(shape{}.vt) - unsafe.Offsetof(Erased{}.vt)]struct{}
	_ [unsafe.Offsetof(Erased{}.vt) - unsafe.Offsetof(shape{}.vt)]struct{}
)
