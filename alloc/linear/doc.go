// Package linear allocates from a WebAssembly linear memory.
//
// The memory belongs to a tiny memory-only module instantiated in a private
// wazero runtime. The runtime reserves the configured maximum up front, so
// growing the memory never moves it and pointers handed out stay valid until
// Close.
//
//	a, err := linear.New(ctx, nil)
//	if err != nil {
//		return err
//	}
//	defer a.Close(ctx)
//
//	buf := blob.NewIn(alloc.Erase(a), layout.Of[uint32](), nil)
//
// Blocks come from a first-fit free list with coalescing; when no free block
// fits, the heap top is bumped and the memory grown by whole pages. The block
// at the top of the heap can be resized in place.
//
// Offset converts a pointer into the guest address a WebAssembly module
// sharing the memory would use.
//
// LoadConfig reads page limits from OPAQUE_LINEAR_INITIAL_PAGES and
// OPAQUE_LINEAR_MAX_PAGES.
package linear
