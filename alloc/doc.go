// Package alloc provides the pluggable allocator abstraction and its
// erase/project handles.
//
// # Allocators
//
// An Allocator hands out raw memory described by a layout.Layout:
//
//	p, err := a.Allocate(layout.Of[uint64]())
//	defer a.Deallocate(p, layout.Of[uint64]())
//
// Optional capabilities are discovered through interfaces:
//
//   - Resizer: grow or shrink a block in place
//   - Cloner: custom cloning for handles
//   - Shared: safe for use from several goroutines at once
//
// Implementations in this module:
//
//	Global            Go heap, zero-size value (the default)
//	Counting          wraps a handle and counts requests
//	Limit             wraps a handle and enforces a byte budget
//	linear.Allocator  first-fit heap in wazero linear memory
//	pages.Allocator   anonymous mmap per allocation
//
// Memory handed out by an allocator is not scanned by the garbage collector.
// Callers must not store Go pointers in it.
//
// # Handles
//
// A handle exclusively owns one boxed allocator value. Typed[A] knows the
// concrete type and dispatches statically; Erased hides it and dispatches
// through a table captured at construction:
//
//	h := alloc.NewHandle(alloc.Global{}) // Typed[Global]
//	e := h.Erase()                       // Erased
//	c := e.Clone()                       // clones the Global without naming it
//	g := alloc.Project[alloc.Global](c)  // checked projection
//
// Zero-size requests never reach the allocator; handles answer them with
// layout.Dangling().
package alloc
