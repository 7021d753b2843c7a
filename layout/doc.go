// Package layout describes the storage requirements of an element.
//
// A Layout is a (size, alignment) pair. Alignment is a power of two and size
// is a multiple of alignment or zero, which makes size the stride between
// consecutive elements of a homogeneous buffer.
//
// # Sources
//
// Layouts come from three places:
//
//	layout.Of[T]()                      // a Go type
//	layout.New(12, 4)                   // explicit values, validated
//	layout.NewCalculator().Calculate(t) // a WIT type, Canonical ABI rules
//
// The Canonical ABI rules for WIT types:
//   - Primitives: size equals alignment (u8=1, u32=4, u64=8, etc.)
//   - Records: fields laid out sequentially with padding for alignment
//   - Variants: discriminant followed by largest payload case
//   - Lists/Strings: (pointer, length) pair of u32
package layout
