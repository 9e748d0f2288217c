package signal

import (
	"runtime"
	"unsafe"

	"github.com/joeycumines/go-fiber/internal/archctx"
	"github.com/joeycumines/go-fiber/internal/stackmem"
)

const rootFiberName = "<Environment Root Fiber>"

// Handle is a stable, heap-allocated reference to a signal-policy fiber.
// As with package fiber's Handle, it must never be copied by value.
type Handle struct {
	name  string
	stack *stackmem.Stack
	ctx   archctx.Context
	state State

	env *environment
	fn  func()
}

// Spawn creates a new fiber running f, gated on an already-pulsed signal
// so its first Run executes it immediately, per §4.4.
func Spawn(f func()) (*Handle, error) {
	return SpawnOpts(f, nil)
}

// SpawnOpts creates a new fiber running f, configured by opts.
func SpawnOpts(f func(), opts []Option) (*Handle, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	pool := currentEnv().pool
	stack := pool.Take(cfg.stackSize)

	h := &Handle{
		name:  cfg.name,
		stack: stack,
		fn:    f,
		state: pendingState(readySignal()),
	}

	archctx.Init(&h.ctx, stack.High(), coroutineEntry, unsafe.Pointer(h))
	runtime.SetFinalizer(h, (*Handle).Release)

	return h, nil
}

// Name returns the fiber's configured name, or "" if none was given.
func (h *Handle) Name() string { return h.name }

func (h *Handle) displayName() string {
	if h.name == "" {
		return "unnamed"
	}
	return h.name
}

// String implements fmt.Stringer.
func (h *Handle) String() string {
	if h.name == "" {
		return "<unnamed>"
	}
	return "<" + h.name + ">"
}

// State returns the fiber's current lifecycle state.
func (h *Handle) State() State { return h.state }

// Release returns the fiber's stack to its pool immediately. It must not
// be called while the fiber is on any chain; after Release, h must not be
// run again.
func (h *Handle) Release() {
	runtime.SetFinalizer(h, nil)
	if h.stack == nil {
		return
	}
	stack := h.stack
	h.stack = nil
	stack.Release()
}

// yieldNow suspends the calling fiber, recording newState, and returns
// control to whichever frame called Run.
func (h *Handle) yieldNow(newState State) {
	env := h.env
	if len(env.chain) == 1 {
		return
	}
	popped := env.pop()
	popped.state = newState
	next := env.top()
	archctx.Swap(&popped.ctx, &next.ctx)
}
