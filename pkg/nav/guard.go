package nav

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
)

// Decision is the outcome of a single guard invocation: proceed, abort, or
// redirect to another path. The zero value proceeds.
//
// Returning a Decision (instead of resolving a callback) makes exactly-once
// resolution true by construction; there is no unresolved state to detect.
type Decision struct {
	kind     decisionKind
	redirect string
}

type decisionKind int

const (
	decisionProceed decisionKind = iota
	decisionAbort
	decisionRedirect
)

// Proceed approves the transition.
func Proceed() Decision { return Decision{kind: decisionProceed} }

// Abort rejects the transition. History and the mounted view stay unchanged.
func Abort() Decision { return Decision{kind: decisionAbort} }

// Redirect rejects the transition in favor of navigating to path instead.
func Redirect(path string) Decision {
	return Decision{kind: decisionRedirect, redirect: path}
}

// IsProceed reports whether the decision approves the transition.
func (d Decision) IsProceed() bool { return d.kind == decisionProceed }

// IsAbort reports whether the decision rejects the transition.
func (d Decision) IsAbort() bool { return d.kind == decisionAbort }

// IsRedirect reports whether the decision redirects the transition.
func (d Decision) IsRedirect() bool { return d.kind == decisionRedirect }

// RedirectPath returns the redirect target for a redirect decision.
func (d Decision) RedirectPath() string { return d.redirect }

// Guard inspects a candidate transition and decides its fate. The context is
// cancelled when the guard's timeout window elapses; well-behaved guards
// should honor it. A returned error or a panic counts as an abort.
type Guard func(ctx context.Context, to, from *Route) (Decision, error)

// Pipeline runs an ordered set of global guards followed by the matched
// route's own BeforeEnter guard against a candidate transition.
//
// Evaluation stops at the first abort or redirect. Each guard invocation is
// individually bounded by the timeout; a guard that never returns is
// abandoned and counted as an abort, so the pipeline can never hang on a
// misbehaving guard. Both thrown errors and timeouts land as aborts rather
// than anything fatal: one buggy guard must not take navigation down for the
// whole application.
type Pipeline struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewPipeline creates a pipeline with the given per-guard timeout.
func NewPipeline(timeout time.Duration, logger *slog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultGuardTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{timeout: timeout, logger: logger}
}

// Run evaluates the global guards in registration order, then the route
// guard (when non-nil), and returns the first non-proceed decision, or
// proceed when every guard approved.
func (p *Pipeline) Run(ctx context.Context, globals []Guard, routeGuard Guard, to, from *Route) Decision {
	for _, guard := range globals {
		if d := p.runOne(ctx, guard, to, from); !d.IsProceed() {
			return d
		}
	}
	if routeGuard != nil {
		if d := p.runOne(ctx, routeGuard, to, from); !d.IsProceed() {
			return d
		}
	}
	return Proceed()
}

// guardResult carries a guard's outcome across the goroutine boundary.
type guardResult struct {
	decision Decision
	err      error
	panicked any
	stack    []byte
}

// runOne invokes a single guard with its own timeout window. The guard runs
// on a separate goroutine; on timeout the goroutine is abandoned (it keeps
// the buffered channel so it can finish without leaking a send).
func (p *Pipeline) runOne(ctx context.Context, guard Guard, to, from *Route) Decision {
	guardCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resultCh := make(chan guardResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultCh <- guardResult{panicked: r, stack: debug.Stack()}
			}
		}()
		d, err := guard(guardCtx, to, from)
		resultCh <- guardResult{decision: d, err: err}
	}()

	select {
	case res := <-resultCh:
		switch {
		case res.panicked != nil:
			p.logger.Error("guard panicked, treating as abort",
				"to", to.Path, "panic", res.panicked, "stack", string(res.stack))
			return Abort()
		case res.err != nil:
			p.logger.Warn("guard returned error, treating as abort",
				"to", to.Path, "error", res.err)
			return Abort()
		default:
			return res.decision
		}
	case <-guardCtx.Done():
		p.logger.Warn("guard timed out, treating as abort",
			"to", to.Path, "timeout", p.timeout)
		return Abort()
	}
}
