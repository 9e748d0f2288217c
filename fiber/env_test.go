package fiber

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Test_sizeOfCacheLine verifies sizeOfCacheLine is a safe, neatly divisible
// upper bound on the actual platform cache line size.
func Test_sizeOfCacheLine(t *testing.T) {
	actual := unsafe.Sizeof(cpu.CacheLinePad{})
	if sizeOfCacheLine < actual {
		t.Errorf("sizeOfCacheLine (%d) is less than actual cache line size (%d)", sizeOfCacheLine, actual)
	}
	if sizeOfCacheLine%actual != 0 {
		t.Errorf("sizeOfCacheLine (%d) is not a multiple of actual cache line size (%d)", sizeOfCacheLine, actual)
	}
}
