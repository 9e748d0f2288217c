package fiber

import (
	"fmt"

	"github.com/joeycumines/go-fiber/internal/stackmem"
)

// spawnConfig holds resolved spawn-time configuration.
type spawnConfig struct {
	stackSize int
	name      string
}

// Option configures a Spawn call. Constructed via WithStackSize/WithName;
// unknown/invalid configuration surfaces as an error from SpawnOpts rather
// than panicking, per the spec's "unknown options are rejected at
// construction."
type Option interface {
	apply(*spawnConfig) error
}

type optionFunc func(*spawnConfig) error

func (f optionFunc) apply(cfg *spawnConfig) error { return f(cfg) }

// WithStackSize requests a stack of at least n bytes. Requests below the
// platform floor (stackmem.MinSize: two usable pages above the guard page)
// are silently raised to that floor; n <= 0 is rejected.
func WithStackSize(n int) Option {
	return optionFunc(func(cfg *spawnConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: stack size must be positive, got %d", ErrUnknownOption, n)
		}
		cfg.stackSize = n
		return nil
	})
}

// WithName attaches a human-readable name, used only in debug/log output
// and in the mandatory panic report line.
func WithName(name string) Option {
	return optionFunc(func(cfg *spawnConfig) error {
		cfg.name = name
		return nil
	})
}

func resolveOptions(opts []Option) (*spawnConfig, error) {
	cfg := &spawnConfig{stackSize: stackmem.MinSize}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.stackSize < stackmem.MinSize {
		cfg.stackSize = stackmem.MinSize
	}
	return cfg, nil
}
