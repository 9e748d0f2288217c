package fiber

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-fiber/internal/stackmem"
)

var (
	// ErrResumeAfterPanic is returned by resume when the target handle has
	// already delivered its panic payload through an earlier resume.
	ErrResumeAfterPanic = errors.New("fiber: resume called on a fiber that already panicked")

	// ErrResumeNormal is returned when resume targets a fiber currently in
	// state Normal -- it is awaiting its own child, and entering it again
	// would violate the single-active-child invariant.
	ErrResumeNormal = errors.New("fiber: resume called on a fiber awaiting its own child")

	// ErrForeignThread is returned when a resume is attempted from a
	// goroutine other than the one that first resumed the handle. Detection
	// is best-effort: it catches the common mistake, not every misuse.
	ErrForeignThread = errors.New("fiber: resume called from a thread other than the fiber's owner")

	// ErrUnknownOption is returned by SpawnOpts when an Option fails to
	// apply to the spawn configuration.
	ErrUnknownOption = errors.New("fiber: unknown or invalid spawn option")
)

// PanicError is the payload delivered by resume/join when the fiber being
// resumed panicked. Value holds whatever was passed to Go's panic.
type PanicError struct {
	// Handle is the fiber that panicked.
	Handle *Handle
	// Value is the recovered panic value.
	Value any
	// Stack is the goroutine stack captured at the moment of recovery,
	// formatted as runtime.Stack would render it.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("fiber %q panicked: %v", e.Handle.Name(), e.Value)
}

// Unwrap supports errors.Is/errors.As against the original panic value, when
// that value was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// StackAllocationError aliases the internal stack package's allocation
// failure type, so callers can recover() and type-assert against it
// without importing an internal package. Per the spec, allocation failure
// is fatal -- it is raised via panic, never returned as an error value.
type StackAllocationError = stackmem.AllocationError
