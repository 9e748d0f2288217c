// Package goroutineid extracts the numeric id the Go runtime assigns to the
// calling goroutine, parsed out of the header line of [runtime.Stack]'s
// output ("goroutine 123 [running]: ...").
//
// This is the standard, if slightly unloved, portable technique for
// goroutine-local identity in pure Go: there is no exported runtime.Goid,
// and the scheduler offers no public thread-local storage. Every fiber
// operation needs to resolve "which per-thread environment am I on" from
// nothing but the call itself, so this package exists to answer exactly
// that, and nothing else.
package goroutineid

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

const goroutinePrefix = "goroutine "

var stackBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 64)
		return &b
	},
}

// Get returns the id of the calling goroutine.
//
// It is relatively expensive (it captures and parses a stack trace) and is
// intended to be called once per fiber operation at most, not in a hot loop.
func Get() int64 {
	buf := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(buf)

	n := runtime.Stack(*buf, false)
	id, ok := parseGoroutineID((*buf)[:n])
	if !ok {
		// The header format is stable across Go releases; this would only
		// trip if the runtime changed it outright.
		panic("goroutineid: could not parse goroutine id from runtime.Stack output")
	}
	return id
}

func parseGoroutineID(b []byte) (int64, bool) {
	if !bytes.HasPrefix(b, []byte(goroutinePrefix)) {
		return 0, false
	}
	b = b[len(goroutinePrefix):]
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(string(b[:end]), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
