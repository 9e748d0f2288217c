package signal

import (
	"fmt"
	"os"
	"unsafe"
)

// coroutineEntry is the archctx.EntryFunc installed for every spawned
// fiber's context; invoked once, on the first swap into a fresh fiber.
func coroutineEntry(arg unsafe.Pointer) {
	h := (*Handle)(arg)
	coroutineInitialize(h)
}

// coroutineInitialize runs the fiber's entry function under panic capture.
// Unlike the direct policy, no payload is transported out through Run --
// the terminal Panicked state is observed directly by the caller, per
// §4.4 ("No child-panic payload is propagated through run").
func coroutineInitialize(h *Handle) {
	fn := h.fn
	h.fn = nil

	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Fiber '%s' panicked at '%v'\n", h.displayName(), r)
				h.state = State{Kind: Panicked}
				return
			}
			h.state = State{Kind: Finished}
		}()
		fn()
	}()

	terminal := h.state
	for {
		h.yieldNow(terminal)
	}
}
