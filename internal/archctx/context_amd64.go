//go:build amd64 && !windows

package archctx

import (
	"reflect"
	"unsafe"
)

// calleeSavedAMD64SysV is the number of 8-byte callee-saved register slots
// the SysV AMD64 ABI requires a function to preserve across a call: RBX,
// RBP, R12, R13, R14, R15. swapContext saves exactly these (the instruction
// pointer is handled implicitly via the ordinary CALL/RET mechanism).
const calleeSavedAMD64SysV = 6

//go:noescape
func swapContext(save, load *Context)

// fiberTrampolineASM has no Go body; it is implemented in context_amd64.s.
func fiberTrampolineASM()

var trampolineEntryAMD64SysV = reflect.ValueOf(fiberTrampolineASM).Pointer()

// initContext lays out a synthetic call frame at the top of the stack so
// that the first swapContext restoring it "returns" into fiberTrampolineASM
// with R15 holding ctx's own address (see context_amd64.s), which
// immediately calls back into goTrampolineEntry.
func initContext(ctx *Context, stackHigh uintptr) {
	// The SysV ABI requires RSP % 16 == 0 immediately before a CALL (i.e.
	// RSP % 16 == 8 at function entry, after the CALL's implicit push).
	// Our synthetic frame plays the role of "after a CALL", so align down
	// to 16 first, then account for the frame we're about to push.
	sp := stackHigh &^ 0xf

	frame := uintptr(calleeSavedAMD64SysV+1) * 8
	sp -= frame

	slots := (*[calleeSavedAMD64SysV + 1]uintptr)(unsafe.Pointer(sp))
	for i := 0; i < calleeSavedAMD64SysV; i++ {
		slots[i] = 0
	}
	// R15 is popped first by swapContext's restore sequence; stash ctx's
	// own address there so fiberTrampolineASM can hand it to Go.
	slots[0] = uintptr(unsafe.Pointer(ctx))
	slots[calleeSavedAMD64SysV] = trampolineEntryAMD64SysV

	ctx.sp = sp
}
