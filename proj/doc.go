// Package proj implements the erase/project duality for arbitrary values.
//
// A Typed[T] owns a boxed T together with its identity. Erasing it yields an
// Erased value that hides T from the static type while keeping the identity,
// so it can be stored next to values of other types. Projecting an Erased
// back to Typed[T] checks the identity first:
//
//	e := proj.Erase(uint32(7))
//
//	t := proj.As[uint32](&e)    // ok, t aliases e
//	_, err := proj.TryAs[int](&e) // *MismatchError, e untouched
//
// Typed[T] and Erased share one memory shape, so As and Into reinterpret the
// erased value in place instead of copying it. The shapes are asserted at
// compile time in layout.go. Go pointers do not distinguish shared from
// exclusive access, so As serves both read and write projections.
//
// Projection is stateless: a failed attempt leaves the erased value exactly
// as it was and may be retried with another type.
package proj
