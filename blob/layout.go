package blob

import "unsafe"

// Typed and Buffer are converted in place.
type shape = Typed[struct{}]

var (
	_ [unsafe.Sizeof(shape{}) - unsafe.Sizeof(Buffer{})]struct{}
	_ [unsafe.Sizeof(Buffer{}) - unsafe.Sizeof(shape{})]struct{}
	_ [unsafe.Alignof(shape{}) - unsafe.Alignof(Buffer{})]struct{}
	_ [unsafe.Alignof(Buffer{}) - unsafe.Alignof(shape{})]struct{}
)
