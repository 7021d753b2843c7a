package pages

import (
	"sync"

	"github.com/wippyai/opaque/alloc"
)

// Config holds allocator options.
type Config struct {
	// Lock locks each mapping into physical memory.
	Lock bool

	// Wipe zeroes each mapping before it is unmapped.
	Wipe bool
}

// DefaultConfig returns the configuration used for a nil *Config.
func DefaultConfig() Config {
	return Config{}
}

// Allocator maps and unmaps anonymous memory. Handles box the pointer, so
// clones share the mapping table.
type Allocator struct {
	cfg  Config
	mu   sync.Mutex
	live map[uintptr][]byte
}

var (
	_ alloc.Allocator = (*Allocator)(nil)
	_ alloc.Shared    = (*Allocator)(nil)
)

// New returns an allocator. A nil cfg means DefaultConfig().
func New(cfg *Config) *Allocator {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Allocator{cfg: c, live: make(map[uintptr][]byte)}
}

// Live returns the number of mappings not yet deallocated.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

func (*Allocator) SharedAcrossGoroutines() {}
