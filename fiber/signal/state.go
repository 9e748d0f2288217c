// Package signal implements the alternative, signal-gated resumption
// policy described alongside the direct policy in package fiber: instead
// of a state machine gating resume, each fiber is gated by an external
// Signal, and the entry point is Run rather than Resume.
//
// It shares no code with package fiber beyond the common internal
// arch-context and stack-memory primitives; the two are independent entry
// points over the same low-level foundation.
package signal

import (
	"fmt"
	"time"
)

// Kind discriminates the signal-policy State variants.
type Kind int

const (
	// Pending means the fiber is parked waiting on Signal to be pulsed.
	Pending Kind = iota
	// PendingTimeout means the fiber is parked waiting on Signal, bounded
	// by Timeout, as arranged by the active Scheduler's WaitTimeout.
	PendingTimeout
	// Finished is terminal: the entry function returned normally.
	Finished
	// Panicked is terminal: the entry function's panic was captured.
	Panicked
)

func (k Kind) String() string {
	switch k {
	case Pending:
		return "Pending"
	case PendingTimeout:
		return "PendingTimeout"
	case Finished:
		return "Finished"
	case Panicked:
		return "Panicked"
	default:
		return "Unknown"
	}
}

// State is the signal-policy lifecycle state of a fiber.
type State struct {
	Kind    Kind
	Signal  *Signal
	Timeout time.Duration
}

// String implements fmt.Stringer.
func (s State) String() string {
	switch s.Kind {
	case Pending:
		return fmt.Sprintf("Pending(%p)", s.Signal)
	case PendingTimeout:
		return fmt.Sprintf("PendingTimeout(%p, %s)", s.Signal, s.Timeout)
	default:
		return s.Kind.String()
	}
}

// Terminal reports whether s is Finished or Panicked.
func (s State) Terminal() bool {
	return s.Kind == Finished || s.Kind == Panicked
}

func pendingState(s *Signal) State { return State{Kind: Pending, Signal: s} }

func pendingTimeoutState(s *Signal, d time.Duration) State {
	return State{Kind: PendingTimeout, Signal: s, Timeout: d}
}
