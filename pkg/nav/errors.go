package nav

import (
	"errors"
	"fmt"
)

// Sentinel errors for the navigation failure taxonomy. All of them are
// recovered locally: they surface as a false result from the public
// navigation operations and a logged diagnostic, never as a panic or a
// corrupted queue.
var (
	// ErrGuardAbort is reported when a guard aborted the transition,
	// returned an error, panicked, or timed out.
	ErrGuardAbort = errors.New("nav: navigation aborted by guard")

	// ErrRedirectLoop is reported when a chain of guard redirects exceeds
	// Config.MaxRedirects within a single navigation attempt.
	ErrRedirectLoop = errors.New("nav: redirect limit exceeded")

	// ErrInvalidTarget is reported for Back/Forward/Go with an
	// out-of-range index, or PushNamed with an unknown name or missing
	// params.
	ErrInvalidTarget = errors.New("nav: invalid navigation target")

	// ErrQueueFull is reported when the navigation queue is full and the
	// request was dropped.
	ErrQueueFull = errors.New("nav: navigation queue full")

	// ErrEngineClosed is reported for operations on a closed engine.
	ErrEngineClosed = errors.New("nav: engine closed")
)

// NavError wraps a navigation failure with the operation and target path for
// diagnostics.
type NavError struct {
	Op   string // Operation that failed ("push", "back", ...)
	Path string // Target path, if known
	Err  error  // Underlying error
}

// Error returns the error message with navigation context.
func (e *NavError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("nav: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("nav: %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *NavError) Unwrap() error {
	return e.Err
}

// ViewError wraps an error or panic raised by a route's view factory.
// History has already been mutated when view construction runs; that is
// accepted, observable behavior.
type ViewError struct {
	Path  string // Route path whose factory failed
	Panic any    // Recovered panic value, if the factory panicked
	Stack []byte // Stack captured at the panic site
	Err   error  // Error returned by the factory, if any
}

// Error returns the error message.
func (e *ViewError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("nav: view factory for %q panicked: %v", e.Path, e.Panic)
	}
	return fmt.Sprintf("nav: view factory for %q failed: %v", e.Path, e.Err)
}

// Unwrap returns the factory's error for errors.Is/As. Nil for panics.
func (e *ViewError) Unwrap() error {
	return e.Err
}
