package signal

import (
	"sync"

	"github.com/joeycumines/go-fiber/internal/goroutineid"
	"github.com/joeycumines/go-fiber/internal/stackmem"
)

// environment is the per-goroutine chain of currently-active signal-policy
// fibers, mirroring package fiber's environment but without the Normal
// state bookkeeping -- Run's gating gives it a simpler chain discipline:
// the chain only ever grows by one frame at a time from Run's caller.
type environment struct {
	pool  *stackmem.Pool
	chain []*Handle
	root  *Handle
}

// sizeOfCacheLine is a conservative upper bound on real cache line size,
// used to pad envRegistry's lock off whatever precedes it in memory. See
// env_test.go for the validation against the actual platform value.
const sizeOfCacheLine = 128

var envRegistry struct {
	_ [sizeOfCacheLine]byte
	sync.RWMutex
	byGoroutine map[int64]*environment
}

func init() {
	envRegistry.byGoroutine = make(map[int64]*environment)
}

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
	env = &environment{
		pool:  stackmem.NewPool(),
		chain: []*Handle{root},
		root:  root,
	}
	root.env = env
	envRegistry.byGoroutine[gid] = env
	return env
}

// currentHandle returns the fiber currently running on the calling
// goroutine (the synthetic root if called from outside any fiber).
func currentHandle() *Handle {
	return currentEnv().top()
}

func (e *environment) top() *Handle {
	return e.chain[len(e.chain)-1]
}

func (e *environment) push(h *Handle) {
	e.chain = append(e.chain, h)
}

func (e *environment) pop() *Handle {
	n := len(e.chain)
	top := e.chain[n-1]
	e.chain[n-1] = nil
	e.chain = e.chain[:n-1]
	return top
}
