//go:build windows

package stackmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var pageSize = func() int {
	var info windows.SystemInfo
	windows.GetSystemInfo(&info)
	return int(info.PageSize)
}()

// newStack reserves and commits size bytes via VirtualAlloc, then revokes
// access to the lowest page with VirtualProtect(PAGE_NOACCESS) as the
// guard, mirroring newStack in stack_unix.go.
func newStack(size int) *Stack {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		panic(&AllocationError{Op: "VirtualAlloc", Size: size, Err: err})
	}

	var oldProtect uint32
	if err := windows.VirtualProtect(addr, uintptr(pageSize), windows.PAGE_NOACCESS, &oldProtect); err != nil {
		_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		panic(&AllocationError{Op: "VirtualProtect", Size: size, Err: err})
	}

	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return &Stack{
		mem:   mem,
		low:   addr + uintptr(pageSize),
		high:  addr + uintptr(size),
		guard: addr,
	}
}

func unmapStack(s *Stack) {
	if s.mem == nil {
		return
	}
	_ = windows.VirtualFree(s.guard, 0, windows.MEM_RELEASE)
	s.mem = nil
}
