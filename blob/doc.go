// Package blob implements a growable buffer of homogeneous elements whose
// size, alignment and destructor are runtime values.
//
// A Buffer is the erased form. It stores raw element bytes in memory
// obtained from an alloc.Erased handle, moves elements by copying bytes and
// runs an optional Destructor when an element is destroyed:
//
//	b := blob.NewIn(alloc.Default(), layout.Of[uint32](), nil)
//	v := uint32(7)
//	if err := b.PushRaw(unsafe.Pointer(&v)); err != nil {
//		return err
//	}
//
// Typed[T] is the statically typed view of a Buffer and shares its memory.
// New builds one directly; As and TryAs project an erased Buffer back after
// checking the element identity:
//
//	t, err := blob.New[point](alloc.Default())
//	...
//	raw := t.Erase()
//	again := blob.As[point](raw)
//
// # Memory
//
// Allocator memory is not scanned by the garbage collector, so element
// types must not contain Go pointers. New rejects such types.
//
// Zero-size elements never touch the allocator. Their buffer reports a
// capacity of math.MaxInt and a non-nil dangling pointer.
//
// # Failures
//
// Reserve and the operations that grow the buffer return
// errors.KindAllocation or errors.KindCapacityOverflow and leave the buffer
// unchanged. Out-of-range indices and invalid layouts are programming
// errors and panic with an *errors.Error.
//
// Destructor panics propagate to the caller after the buffer has been put
// back into a consistent state: every element is destroyed exactly once,
// either before the panic or by a later Truncate, Clear or Drop.
//
// A Buffer is not safe for concurrent use.
package blob
