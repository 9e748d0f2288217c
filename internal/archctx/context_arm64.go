//go:build arm64

package archctx

import (
	"reflect"
	"unsafe"
)

// calleeSavedARM64 counts the AAPCS64 callee-saved general registers X19-
// X28 (10), plus the frame pointer X29 and the link register X30 (saved
// explicitly, since ARM64 has no implicit return-address push — BL simply
// loads LR, and RET branches to whatever's in LR at the time).
const calleeSavedARM64 = 12

//go:noescape
func swapContext(save, load *Context)

// fiberTrampolineASM has no Go body; it is implemented in
// context_arm64.s.
func fiberTrampolineASM()

var trampolineEntryARM64 = reflect.ValueOf(fiberTrampolineASM).Pointer()

// initContext mirrors context_amd64.go's scheme: build a synthetic frame
// whose layout matches swapContext's restore order (see context_arm64.s),
// with the slot that becomes X19 holding ctx's own address and LR pointing
// at fiberTrampolineASM.
func initContext(ctx *Context, stackHigh uintptr) {
	// AAPCS64 requires SP to be 16-byte aligned at all times a function is
	// executing, not just at call boundaries.
	sp := stackHigh &^ 0xf

	frame := uintptr(calleeSavedARM64) * 8
	sp -= frame

	slots := (*[calleeSavedARM64]uintptr)(unsafe.Pointer(sp))
	for i := 0; i < calleeSavedARM64; i++ {
		slots[i] = 0
	}
	// X19 is the first register swapContext's restore sequence loads;
	// stash ctx's own address there for fiberTrampolineASM.
	slots[0] = uintptr(unsafe.Pointer(ctx))
	// LR (X30): the last slot, loaded last and used by RET.
	slots[calleeSavedARM64-1] = trampolineEntryARM64

	ctx.sp = sp
}
