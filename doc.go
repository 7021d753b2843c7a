// Package opaque provides building blocks for generic containers that can be
// erased to a uniform runtime form and projected back to a typed view.
//
// The same erase/project protocol is applied to boxed values, allocators,
// hashers and element buffers. A typed value knows its static type; its
// erased form carries a type identity instead and is checked on every
// projection, so a wrong projection fails instead of reinterpreting memory.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	opaque/
//	├── typeid/         Runtime type identity
//	├── proj/           Typed/Erased boxes and checked projection
//	├── layout/         Element size and alignment, WIT type layouts
//	├── growth/         Capacity growth policy
//	├── alloc/          Allocator interface, handles, Global/Counting/Limit
//	│   ├── linear/     Allocator over a wazero linear memory
//	│   └── pages/      Allocator over anonymous mmap
//	├── hashing/        Erasable hasher builders (FNV, Murmur3, xxHash, BLAKE3)
//	├── blob/           Growable buffer of runtime-described elements
//	├── registry/       Handle table of erased values
//	└── errors/         Structured error types
//
// # Quick Start
//
// Build a typed buffer, erase it and project it back:
//
//	b, err := blob.New[uint32](alloc.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Drop()
//
//	_ = b.Push(7)
//	raw := b.Erase()              // *blob.Buffer, element type hidden
//	again := blob.As[uint32](raw) // same memory, checked identity
//	fmt.Println(again.Get(0))     // 7
//
// Allocators travel the same way:
//
//	h := alloc.Erase(alloc.NewCounting(alloc.Default()))
//	c := alloc.Project[alloc.Counting](h.Clone())
//
// # Thread Safety
//
// Nothing in the core locks. Buffers, tables and handles belong to one
// goroutine at a time. Allocator handles report through Shared whether the
// boxed allocator may be used concurrently.
//
// # Memory Model
//
// Allocator memory is not scanned by the garbage collector. Element types
// stored in a blob.Buffer must not contain Go pointers; blob.New enforces
// this for typed buffers.
package opaque
