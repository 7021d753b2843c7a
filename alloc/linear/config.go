package linear

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/wippyai/opaque/errors"
)

// EnvPrefix is the default environment prefix read by LoadConfig.
const EnvPrefix = "OPAQUE_LINEAR"

// LoadConfig starts from DefaultConfig and overrides it from the
// environment, e.g. OPAQUE_LINEAR_MAX_PAGES=1024. An empty prefix means
// EnvPrefix.
func LoadConfig(prefix string) (Config, error) {
	if prefix == "" {
		prefix = EnvPrefix
	}
	cfg := DefaultConfig()
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseAlloc, errors.KindUnsupported, err, "linear memory config from environment")
	}
	return cfg, nil
}
