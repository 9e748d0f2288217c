package signal

import (
	"runtime"
	"sync"
)

// Signal is an external, single-fire readiness token: pending, pulsed, or
// dropped. A fiber gated on a Signal becomes runnable once it is pulsed;
// if it is dropped while still pending, a waiter must observe that as an
// error rather than block forever.
type Signal struct {
	mu      sync.Mutex
	pulsed  bool
	dropped bool
}

// Pulser is the write side of a Signal pair: exactly one Pulse call (or
// none, followed by collection) is expected per Signal.
type Pulser struct {
	signal *Signal
}

// New creates a paired Signal/Pulser, the Signal starting pending.
func New() (*Signal, *Pulser) {
	s := &Signal{}
	p := &Pulser{signal: s}
	runtime.SetFinalizer(p, (*Pulser).drop)
	return s, p
}

// Pulse fires the signal. Safe to call at most once; later calls are
// no-ops.
func (p *Pulser) Pulse() {
	runtime.SetFinalizer(p, nil)
	p.signal.mu.Lock()
	defer p.signal.mu.Unlock()
	if !p.signal.dropped {
		p.signal.pulsed = true
	}
}

// Discard explicitly marks the signal dropped, if it was never pulsed,
// without waiting for garbage collection. Prefer this over letting a
// Pulser fall out of scope when the drop needs to be observed promptly.
func (p *Pulser) Discard() {
	runtime.SetFinalizer(p, nil)
	p.drop()
}

// drop marks the signal dropped if it was never pulsed; installed as a
// finalizer so a Pulser that is simply discarded (never explicitly
// pulsed) still unblocks any waiter, instead of leaving it stuck forever.
func (p *Pulser) drop() {
	p.signal.mu.Lock()
	defer p.signal.mu.Unlock()
	if !p.signal.pulsed {
		p.signal.dropped = true
	}
}

// IsPending reports whether the signal is neither pulsed nor dropped.
func (s *Signal) IsPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.pulsed && !s.dropped
}

func (s *Signal) isPulsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pulsed
}

func (s *Signal) isDropped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// readySignal returns a Signal that is already pulsed, used to gate a
// freshly spawned fiber's very first Run per §4.4 ("starts with state
// Pending(signal) for a pre-pulsed signal").
func readySignal() *Signal {
	s := &Signal{pulsed: true}
	return s
}
