package nav

import "time"

// Observer receives transition lifecycle notifications from the engine.
// Implementations plug in metrics, tracing, or debug inspection without
// touching the transition algorithm; see the navmw and inspect packages.
//
// Both callbacks run on the engine's worker goroutine, once per queued
// request (redirect chasing inside a request does not re-notify). A panic in
// an observer is recovered and logged, never interrupting the transition or
// the other observers.
type Observer interface {
	// TransitionStarted fires before the path is resolved.
	TransitionStarted(path string, direction Direction)

	// TransitionFinished fires after the request settled. to is the
	// resolved target (nil when resolution never happened, e.g. an
	// out-of-range Go), from the route that was current when the request
	// started, and err the failure per the taxonomy in errors.go, or nil.
	TransitionFinished(to, from *Route, direction Direction, err error, elapsed time.Duration)
}
