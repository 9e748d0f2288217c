package signal

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-fiber/internal/stackmem"
)

// ErrUnknownOption is returned by SpawnOpts when an Option fails to apply.
var ErrUnknownOption = errors.New("signal: unknown or invalid spawn option")

type spawnConfig struct {
	stackSize int
	name      string
}

// Option configures a SpawnOpts call.
type Option interface {
	apply(*spawnConfig) error
}

type optionFunc func(*spawnConfig) error

func (f optionFunc) apply(cfg *spawnConfig) error { return f(cfg) }

// WithStackSize requests a stack of at least n bytes.
func WithStackSize(n int) Option {
	return optionFunc(func(cfg *spawnConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: stack size must be positive, got %d", ErrUnknownOption, n)
		}
		cfg.stackSize = n
		return nil
	})
}

// WithName attaches a human-readable name, used only in String() and in
// the stderr panic report line.
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
