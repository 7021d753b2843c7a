//go:build !unix

package pages

import (
	"unsafe"

	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
)

func (a *Allocator) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return layout.Dangling(), nil
	}
	return nil, errors.Unsupported(errors.PhaseAlloc, "anonymous memory mappings")
}

func (a *Allocator) Deallocate(unsafe.Pointer, layout.Layout) {}

func (a *Allocator) Close() error {
	return nil
}
