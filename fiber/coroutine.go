package fiber

import (
	"fmt"
	"os"
	"runtime/debug"
	"unsafe"

	"github.com/joeycumines/go-fiber/internal/archctx"
)

// coroutineEntry is the archctx.EntryFunc installed for every spawned
// fiber's context. It is only ever invoked once, on the first swap into a
// fresh fiber, via internal/archctx's trampoline.
func coroutineEntry(arg unsafe.Pointer) {
	h := (*Handle)(arg)
	coroutineInitialize(h)
}

// coroutineInitialize runs the fiber's entry function under panic capture,
// then parks the fiber in its terminal state forever, per §4.4: any further
// accidental swap back into a terminal fiber must immediately re-yield
// rather than fall off the end of this function.
func coroutineInitialize(h *Handle) {
	fn := h.fn
	h.fn = nil

	func() {
		defer func() {
			if r := recover(); r != nil {
				err := &PanicError{Handle: h, Value: r, Stack: debug.Stack()}

				fmt.Fprintf(os.Stderr, "Fiber '%s' panicked at '%v'\n", h.displayName(), r)
				logPanic(h.displayName(), err)

				h.env.inFlightPanic = err
				h.state.store(Panicked)
				return
			}
			h.env.inFlightPanic = nil
			h.state.store(Finished)
		}()
		fn()
	}()

	logDebug("lifecycle", h.displayName(), "fiber "+h.state.load().String())

	terminal := h.state.load()
	for {
		h.yieldNow(terminal)
	}
}

// yieldNow pops the chain (if more than the root remains), marks the popped
// fiber with newState, and swaps execution into the new top.
//
// The caller must be the currently-running fiber (the top of its
// environment's chain); this holds by construction, since the only callers
// are coroutineInitialize (a fiber yielding itself into its terminal state)
// and the package-level YieldNow (which targets Current(), the fiber it is
// called from).
func (h *Handle) yieldNow(newState State) {
	env := h.env
	if len(env.chain) == 1 {
		// Yielding from the root fiber is a silent no-op: it preserves the
		// host's own control flow.
		return
	}

	popped := env.pop()
	popped.state.store(newState)
	next := env.top()

	archctx.Swap(&popped.ctx, &next.ctx)
}
