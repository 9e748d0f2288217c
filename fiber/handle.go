// Package fiber implements stackful, user-space cooperative fibers: each
// fiber owns a private, guard-paged OS stack and is resumed via a
// register-level context switch rather than a compiler transform, so
// arbitrary call-depth code -- including panics and unwinding -- can
// suspend at any point.
//
// A fiber is pinned to whichever goroutine first resumes it (see
// internal/goroutineid); resuming the same Handle from a different
// goroutine is a protocol violation, detected on a best-effort basis.
//
// See package fiber/signal for the alternative signal-gated resumption
// policy over the same underlying stack/context machinery.
package fiber

import (
	"runtime"
	"unsafe"

	"github.com/joeycumines/go-fiber/internal/archctx"
	"github.com/joeycumines/go-fiber/internal/goroutineid"
	"github.com/joeycumines/go-fiber/internal/stackmem"
)

// Handle is a stable, heap-allocated reference to a fiber. Handles must
// never be copied by value; always pass and store *Handle.
//
// A Handle returned by Spawn is send-capable (may be passed to another
// goroutine) but not safe for concurrent resume from more than one
// goroutine, and becomes affine to whichever goroutine first resumes it.
type Handle struct {
	name  string
	stack *stackmem.Stack
	ctx   archctx.Context
	state atomicState

	env            *environment
	ownerGoroutine int64
	ownerSet       bool

	fn func()
}

// Spawn creates a new fiber running f, using default options, and returns
// its handle in state Suspended.
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
	}
	h.state.store(Suspended)

	archctx.Init(&h.ctx, stack.High(), coroutineEntry, unsafe.Pointer(h))

	// Go has no deterministic destructors; the spec's "dropping a handle
	// returns its stack to the pool" is approximated with a finalizer as a
	// backstop, and Release as the explicit, preferred path.
	runtime.SetFinalizer(h, (*Handle).Release)

	logDebug("lifecycle", h.displayName(), "fiber spawned")
	return h, nil
}

// Release returns the fiber's stack to its pool immediately, instead of
// waiting for garbage collection. It must not be called while the fiber is
// on any chain (Running or Normal); calling it on an already-released
// handle is a no-op. After Release, h must not be resumed again.
func (h *Handle) Release() {
	runtime.SetFinalizer(h, nil)
	if h.stack == nil {
		return
	}
	stack := h.stack
	h.stack = nil
	stack.Release()
}

// Name returns the fiber's configured name, or "" if none was given.
func (h *Handle) Name() string { return h.name }

// displayName renders the name the way the mandatory panic line and debug
// logging use: the configured name, or the literal "unnamed".
func (h *Handle) displayName() string {
	if h.name == "" {
		return "unnamed"
	}
	return h.name
}

// String implements fmt.Stringer, rendering "<name>" or "<unnamed>".
func (h *Handle) String() string {
	if h.name == "" {
		return "<unnamed>"
	}
	return "<" + h.name + ">"
}

// State returns the fiber's current lifecycle state.
func (h *Handle) State() State { return h.state.load() }

// Panicking reports whether the fiber's state is Panicked.
func (h *Handle) Panicking() bool { return h.state.load() == Panicked }

// Finished reports whether the fiber's state is Finished.
func (h *Handle) Finished() bool { return h.state.load() == Finished }

// Current returns the handle of the fiber currently running on the calling
// goroutine -- the root fiber, if called from outside any spawned fiber.
func Current() *Handle {
	return currentEnv().top()
}

// Resume transfers control to h, per the direct-policy protocol in §4.4 of
// the runtime's design: a no-op returning nil if h is Finished or already
// Running (including the self-resume case), an error if h is Panicked or
// Normal, otherwise a real context switch that returns once h yields,
// finishes, or panics.
func (h *Handle) Resume() error {
	switch h.state.load() {
	case Finished, Running:
		return nil
	case Panicked:
		return ErrResumeAfterPanic
	case Normal:
		return ErrResumeNormal
	}

	env := currentEnv()

	gid := goroutineid.Get()
	if !h.ownerSet {
		h.ownerGoroutine = gid
		h.ownerSet = true
		h.env = env
	} else if h.ownerGoroutine != gid || h.env != env {
		return ErrForeignThread
	}

	cur := env.top()
	cur.state.store(Normal)
	h.state.store(Running)
	env.push(h)

	archctx.Swap(&cur.ctx, &h.ctx)

	cur.state.store(Running)
	if env.inFlightPanic != nil {
		err := env.inFlightPanic
		env.inFlightPanic = nil
		return err
	}
	return nil
}

// Join drives Resume until h reaches a terminal state, returning the first
// error encountered (a panic payload), if any.
func (h *Handle) Join() error {
	for !h.state.load().Terminal() {
		if err := h.Resume(); err != nil {
			return err
		}
	}
	return nil
}

// YieldNow suspends the calling fiber, recording newState, and returns
// control to whichever fiber resumed it. newState must not be Running.
// Calling YieldNow from the root fiber (i.e. not from inside any spawned
// fiber) is a silent no-op.
func YieldNow(newState State) {
	if newState == Running {
		panic("fiber: YieldNow called with state Running")
	}
	Current().yieldNow(newState)
}

// Sched is sugar for YieldNow(Suspended).
func Sched() { YieldNow(Suspended) }

// Block is sugar for YieldNow(Blocked).
func Block() { YieldNow(Blocked) }
