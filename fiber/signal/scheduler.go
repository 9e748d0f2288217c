package signal

import (
	"sync"
	"time"
)

// Scheduler is the ambient wait abstraction the signal policy consumes:
// code running inside a fiber calls Wait/WaitTimeout to park until a
// Signal fires. The default installed scheduler implements Wait by
// cooperatively yielding (state Pending) until the signal resolves, and
// does not implement timeouts at all.
//
// A reactor sitting above Run can install a smarter Scheduler -- one that,
// say, integrates the wait with an I/O poller's readiness set -- without
// this package needing to know anything about it.
type Scheduler interface {
	// Wait parks the calling fiber until s is pulsed, returning
	// ErrSignalDropped if s is dropped first.
	Wait(s *Signal) error
	// WaitTimeout parks the calling fiber until s is pulsed or d elapses.
	// The default scheduler does not support this and panics with
	// TimeoutUnsupportedError.
	WaitTimeout(s *Signal, d time.Duration) error
}

var globalScheduler struct {
	sync.RWMutex
	scheduler Scheduler
}

// SetScheduler installs the package-wide ambient scheduler. A nil scheduler
// restores the default busy-yield scheduler.
func SetScheduler(s Scheduler) {
	globalScheduler.Lock()
	defer globalScheduler.Unlock()
	globalScheduler.scheduler = s
}

func activeScheduler() Scheduler {
	globalScheduler.RLock()
	defer globalScheduler.RUnlock()
	if globalScheduler.scheduler != nil {
		return globalScheduler.scheduler
	}
	return defaultScheduler{}
}

// defaultScheduler is the minimal scheduler described in §5: it implements
// Wait by re-yielding with state Pending(signal) until the signal resolves,
// and explicitly fails WaitTimeout rather than pretending to support it.
type defaultScheduler struct{}

func (defaultScheduler) Wait(s *Signal) error {
	for {
		if s.isDropped() {
			return ErrSignalDropped
		}
		if s.isPulsed() {
			return nil
		}
		currentHandle().yieldNow(pendingState(s))
	}
}

func (defaultScheduler) WaitTimeout(s *Signal, d time.Duration) error {
	panic(TimeoutUnsupportedError{})
}

// Wait parks the currently-running fiber until s is pulsed, using the
// active scheduler.
func Wait(s *Signal) error {
	return activeScheduler().Wait(s)
}

// WaitTimeout parks the currently-running fiber until s is pulsed or d
// elapses, using the active scheduler.
func WaitTimeout(s *Signal, d time.Duration) error {
	return activeScheduler().WaitTimeout(s, d)
}
