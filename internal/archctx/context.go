// Package archctx provides the architecture-specific register context used
// to bootstrap a fresh stack and switch execution between two such stacks.
//
// It implements exactly two primitives, the minimum needed by the fiber
// core above it: Init (the spec's make_context) arranges a stack so the
// first Swap into it starts running a given entry function; Swap (the
// spec's swap_context) atomically saves the caller's callee-saved register
// state and restores the callee's, transferring control.
//
// Everything in this package is unsafe and non-reentrant by construction:
// a *Context must never be copied once it has been the target of Swap, and
// Init/Swap must only ever be called with the fiber-level bookkeeping (the
// environment chain in the parent package) already updated to reflect the
// transfer — archctx itself tracks nothing about *who* is running, only
// *where* their registers are.
package archctx

import "unsafe"

// EntryFunc is invoked (once) the first time a Context built by Init is
// swapped into. It must not return: doing so is undefined behaviour, as
// there is no caller frame to return to. Well-behaved entry functions end
// every path by yielding back to their resumer instead.
type EntryFunc func(arg unsafe.Pointer)

// Context is an opaque, architecture-specific saved-register block
// representing one suspended execution context.
//
// The zero Context is meaningless on its own; it must be populated either
// by Init (a fresh, not-yet-run context) or as the "save" target of a Swap
// (an existing, now-suspended context). A Context's address must be stable
// for its entire lifetime — it is typically embedded directly in a
// heap-allocated, never-moved owner struct (see fiber.Handle).
type Context struct {
	sp    uintptr
	entry EntryFunc
	arg   unsafe.Pointer
}

// Init arranges stack (the full usable range, high address exclusive, i.e.
// stack grows down from stackHigh) so that the first Swap loading ctx
// invokes entry(arg) on that stack.
//
// ctx must not yet have been the target of a Swap. stackHigh need not be
// aligned: Init aligns it down to the 16 bytes the target architecture's
// ABI requires, so callers should over-allocate slightly rather than
// relying on exact alignment themselves.
func Init(ctx *Context, stackHigh uintptr, entry EntryFunc, arg unsafe.Pointer) {
	ctx.entry = entry
	ctx.arg = arg
	initContext(ctx, stackHigh)
}

// Swap saves the currently-executing callee-saved register state
// (including the effective instruction pointer, transported via the
// ordinary call/return mechanism) into *save, then restores the state
// previously saved in *load and resumes there.
//
// Swap is a full compiler and hardware barrier: nothing caller-saved, and
// no compiler-tracked value, survives across it except through memory
// reachable from save/load or globals. It does not return until some later
// Swap targets *save again.
func Swap(save, load *Context) {
	swapContext(save, load)
}

// goTrampolineEntry is the landing point for the very first Swap into a
// Context built by Init. It is reached only via the synthetic return
// address Init wrote into the fresh stack's frame; every architecture's
// assembly trampoline arranges for ctxPtr to be the address of the Context
// being entered (stashed there by initContext, carried through the
// register restore because nothing else has touched it yet) before
// transferring here with an ordinary Go call.
//
// This function is only ever reached via assembly and must never be
// called directly from Go code.
func goTrampolineEntry(ctxPtr uintptr) {
	ctx := (*Context)(unsafe.Pointer(ctxPtr))
	entry, arg := ctx.entry, ctx.arg
	ctx.entry, ctx.arg = nil, nil
	entry(arg)
	panic("archctx: entry function returned without yielding")
}
