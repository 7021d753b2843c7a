//go:build unix

package pages

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/wippyai/opaque/alloc"
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
)

var pageSize = uintptr(os.Getpagesize())

func (a *Allocator) Allocate(l layout.Layout) (unsafe.Pointer, error) {
	if l.Size == 0 {
		return layout.Dangling(), nil
	}
	if l.Align > pageSize || l.Size > layout.MaxBytes-(pageSize-1) {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, l.Size, l.Align)
	}

	data, err := unix.Mmap(-1, 0, int(l.Size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "mmap")
	}
	if a.cfg.Lock {
		if err := unix.Mlock(data); err != nil {
			_ = unix.Munmap(data)
			return nil, errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "mlock")
		}
	}

	p := unsafe.Pointer(unsafe.SliceData(data))
	a.mu.Lock()
	a.live[uintptr(p)] = data
	a.mu.Unlock()
	return p, nil
}

func (a *Allocator) Deallocate(p unsafe.Pointer, l layout.Layout) {
	if l.Size == 0 {
		return
	}
	a.mu.Lock()
	data, ok := a.live[uintptr(p)]
	delete(a.live, uintptr(p))
	a.mu.Unlock()
	if !ok {
		panic(errors.NotFound(errors.PhaseAlloc, "mapping", p))
	}

	if a.cfg.Wipe {
		clear(data)
	}
	if a.cfg.Lock {
		_ = unix.Munlock(data)
	}
	if err := unix.Munmap(data); err != nil {
		// The mapping is leaked; nothing else can be done from here.
		alloc.Logger().Warn("munmap failed", zap.Uintptr("addr", uintptr(p)), zap.Error(err))
	}
}

// Close unmaps every live mapping. Pointers into them are invalid
// afterwards. Failures are collected and returned together.
func (a *Allocator) Close() error {
	a.mu.Lock()
	live := a.live
	a.live = make(map[uintptr][]byte)
	a.mu.Unlock()

	var result *multierror.Error
	for addr, data := range live {
		if a.cfg.Wipe {
			clear(data)
		}
		if a.cfg.Lock {
			_ = unix.Munlock(data)
		}
		if err := unix.Munmap(data); err != nil {
			result = multierror.Append(result, errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err,
				fmt.Sprintf("munmap %#x", addr)))
		}
	}
	return result.ErrorOrNil()
}
