//go:build amd64 && windows

package archctx

import (
	"reflect"
	"unsafe"
)

// calleeSavedAMD64Windows is the number of 8-byte callee-saved register
// slots the Windows x64 calling convention requires preserved across a
// call: RBX, RBP, RDI, RSI, R12, R13, R14, R15. Unlike SysV, Windows treats
// RDI and RSI as callee-saved, so the set is two registers larger.
//
// This does not save the non-volatile XMM6-XMM15 registers; a fiber that
// relies on floating point/SIMD state surviving a yield unmodified by code
// running on a sibling fiber is, for now, out of scope (the same
// simplification arch/amd64 SysV makes implicitly, since System V has no
// callee-saved XMM registers at all).
const calleeSavedAMD64Windows = 8

//go:noescape
func swapContext(save, load *Context)

// fiberTrampolineASM has no Go body; it is implemented in
// context_windows_amd64.s.
func fiberTrampolineASM()

var trampolineEntryAMD64Windows = reflect.ValueOf(fiberTrampolineASM).Pointer()

// initContext lays out a synthetic frame mirroring swapContext's restore
// order (see context_windows_amd64.s) plus the two Thread Information
// Block fields (stack base/limit) the assembly additionally swaps: Windows
// structured exception handling and the stack guard-page mechanism both
// consult the TIB's recorded stack bounds (GS:[0x08] base, GS:[0x10]
// limit), so a fiber's native stack must be published there while it runs
// or SEH unwinding and stack-overflow detection will observe the wrong
// bounds.
func initContext(ctx *Context, stackHigh uintptr) {
	sp := stackHigh &^ 0xf

	// 2 TIB slots (stack limit, stack base) + 8 GPR slots + 1 return
	// address. swapContext pushes GPRs first (BP,BX,DI,SI,R12,R13,R14,R15)
	// then the two TIB fields last, so on restore the TIB fields are the
	// first two values popped and R15 is the third -- this layout must
	// mirror that order exactly, low address to high.
	frame := uintptr(2+calleeSavedAMD64Windows+1) * 8
	sp -= frame

	slots := (*[2 + calleeSavedAMD64Windows + 1]uintptr)(unsafe.Pointer(sp))

	// TIB stack limit/base for this fiber's own stack, the first two
	// values swapContext pops, restored into GS:[0x10]/GS:[0x08].
	slots[0] = sp
	slots[1] = stackHigh

	for i := 0; i < calleeSavedAMD64Windows; i++ {
		slots[2+i] = 0
	}
	// R15 is the third value popped by swapContext's restore sequence
	// (after the two TIB fields); stash ctx's own address there for
	// fiberTrampolineASM.
	slots[2] = uintptr(unsafe.Pointer(ctx))
	slots[2+calleeSavedAMD64Windows] = trampolineEntryAMD64Windows

	ctx.sp = sp
}
