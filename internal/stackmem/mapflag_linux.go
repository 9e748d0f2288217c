package stackmem

import "golang.org/x/sys/unix"

// MAP_STACK is a hint most Linux kernels use for AIO bookkeeping around
// guard pages; harmless to set and cheap to get right.
const mapStackFlag = unix.MAP_STACK
