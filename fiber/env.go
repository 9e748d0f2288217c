package fiber

import (
	"sync"

	"github.com/joeycumines/go-fiber/internal/goroutineid"
	"github.com/joeycumines/go-fiber/internal/stackmem"
)

// rootFiberName is used for the synthetic fiber representing the host
// goroutine itself, permanently at the bottom of every chain.
const rootFiberName = "<Environment Root Fiber>"

// sizeOfCacheLine is a conservative upper bound on real cache line size,
// used to pad envRegistry's lock off whatever precedes it in memory. See
// env_test.go for the validation against the actual platform value.
const sizeOfCacheLine = 128

// environment is the per-goroutine structure holding the stack pool
// reference, the chain of active fibers, and the in-flight panic slot.
//
// The spec's "thread" is, in this Go port, the calling goroutine: Go offers
// no public API for true OS-thread identity, and fibers are defined to be
// pinned to whichever schedulable unit first resumes them, which for
// goroutines not pinned to an OS thread via runtime.LockOSThread is the
// goroutine itself. See internal/goroutineid for the identity mechanism.
type environment struct {
	pool          *stackmem.Pool
	chain         []*Handle
	root          *Handle
	inFlightPanic *PanicError
}

var envRegistry struct {
	_ [sizeOfCacheLine]byte
	sync.RWMutex
	byGoroutine map[int64]*environment
}

func init() {
	envRegistry.byGoroutine = make(map[int64]*environment)
}

// currentEnv returns (lazily constructing, if necessary) the environment for
// the calling goroutine.
func currentEnv() *environment {
	gid := goroutineid.Get()

	envRegistry.RLock()
	env, ok := envRegistry.byGoroutine[gid]
	envRegistry.RUnlock()
	if ok {
		return env
	}

	envRegistry.Lock()
	defer envRegistry.Unlock()
	if env, ok := envRegistry.byGoroutine[gid]; ok {
		return env
	}

	root := &Handle{name: rootFiberName}
	root.state.store(Running)

	env = &environment{
		pool:  stackmem.NewPool(),
		chain: []*Handle{root},
		root:  root,
	}
	root.env = env
	envRegistry.byGoroutine[gid] = env
	return env
}

// top returns the currently-running fiber on this environment's chain.
func (e *environment) top() *Handle {
	return e.chain[len(e.chain)-1]
}

// push appends h to the chain, making it the new top.
func (e *environment) push(h *Handle) {
	e.chain = append(e.chain, h)
}

// pop removes and returns the top of the chain. Never pops the root.
func (e *environment) pop() *Handle {
	n := len(e.chain)
	top := e.chain[n-1]
	e.chain[n-1] = nil
	e.chain = e.chain[:n-1]
	return top
}
