package blob

import "github.com/wippyai/opaque/growth"

// Config holds buffer configuration.
type Config struct {
	// Growth decides the capacity to reallocate to.
	Growth growth.Policy
}

// DefaultConfig returns the configuration used by NewIn.
func DefaultConfig() Config {
	return Config{Growth: growth.Default()}
}
