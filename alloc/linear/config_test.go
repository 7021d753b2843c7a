package linear

import (
	"context"
	"errors"
	"testing"

	opaqueerrors "github.com/wippyai/opaque/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("OPAQUE_LINEAR_TEST_UNSET")
		if err != nil {
			t.Fatal(err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("LoadConfig = %+v, want %+v", cfg, DefaultConfig())
		}
	})

	t.Run("override", func(t *testing.T) {
		t.Setenv("OPAQUE_LINEAR_INITIAL_PAGES", "2")
		t.Setenv("OPAQUE_LINEAR_MAX_PAGES", "8")
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.InitialPages != 2 || cfg.MaxPages != 8 {
			t.Fatalf("LoadConfig = %+v", cfg)
		}

		a, err := New(context.Background(), &cfg)
		if err != nil {
			t.Fatal(err)
		}
		defer a.Close(context.Background())
		if got := a.Memory().Size(); got != 2*PageSize {
			t.Errorf("memory size = %d, want %d", got, 2*PageSize)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		t.Setenv("OPAQUE_LINEAR_MAX_PAGES", "many")
		_, err := LoadConfig("")
		var e *opaqueerrors.Error
		if !errors.As(err, &e) || e.Kind != opaqueerrors.KindUnsupported {
			t.Fatalf("err = %v, want unsupported", err)
		}
	})
}
