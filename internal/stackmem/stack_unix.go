//go:build unix

package stackmem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

var pageSize = unix.Getpagesize()

// newStack maps size bytes private+anonymous, readable+writable, using
// MAP_STACK on Linux only (mapflag_other.go leaves it out on every other
// Unix), then revokes access to the lowest page as the guard.
//
// Stacks grow from high addresses to low, so the "lowest page" -- the one
// made PROT_NONE -- is the first pageSize bytes of the mapping, and High()
// starts consumption from the far end.
func newStack(size int) *Stack {
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|mapStackFlag)
	if err != nil {
		panic(&AllocationError{Op: "mmap", Size: size, Err: err})
	}

	if err := unix.Mprotect(mem[:pageSize], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mem)
		panic(&AllocationError{Op: "mprotect", Size: size, Err: err})
	}

	guard := uintptr(unsafe.Pointer(&mem[0]))
	return &Stack{
		mem:   mem,
		low:   guard + uintptr(pageSize),
		high:  guard + uintptr(len(mem)),
		guard: guard,
	}
}

func unmapStack(s *Stack) {
	if s.mem == nil {
		return
	}
	_ = unix.Munmap(s.mem)
	s.mem = nil
}
