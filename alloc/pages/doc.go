// Package pages allocates every block as its own anonymous memory mapping.
//
// The memory lives outside the Go heap, so the garbage collector never scans
// or moves it, and Deallocate returns it to the operating system at once.
// Blocks are page aligned; larger alignments fail with errors.KindAllocation. With Config.Lock
// the pages are also locked into RAM, and with Config.Wipe they are zeroed
// before unmapping.
//
// Close unmaps whatever is still live.
//
// The allocator is safe for concurrent use and declares alloc.Shared.
// Platforms without mmap get an allocator whose Allocate always fails with
// errors.KindUnsupported.
package pages
