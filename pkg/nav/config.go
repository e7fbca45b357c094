package nav

import (
	"log/slog"
	"time"
)

// Defaults for the engine's resource bounds. All of them are plain
// configuration constants; none is load-bearing for correctness beyond
// keeping the engine bounded.
const (
	// DefaultGuardTimeout bounds each individual guard invocation.
	DefaultGuardTimeout = 5 * time.Second

	// DefaultMaxRedirects bounds chained guard redirects within one
	// navigation attempt.
	DefaultMaxRedirects = 10

	// DefaultMaxHistorySize bounds the history stack.
	DefaultMaxHistorySize = 100

	// DefaultMaxPendingNavigations is the navigation queue buffer size.
	DefaultMaxPendingNavigations = 64
)

// Config holds configuration for a navigation engine.
type Config struct {
	// Routes are the initial route definitions, registered in order.
	Routes []RouteDefinition

	// DefaultRoute, if set, is pushed immediately on engine creation.
	DefaultRoute string

	// Debug enables structured logging of every transition, abort, and
	// error. It gates verbosity only, never functionality.
	Debug bool

	// MaxHistorySize bounds the history stack.
	// Default: DefaultMaxHistorySize.
	MaxHistorySize int

	// GuardTimeout bounds each guard invocation individually (not the
	// pipeline as a whole). Default: DefaultGuardTimeout.
	GuardTimeout time.Duration

	// MaxRedirects bounds chained redirects within a single navigation
	// attempt. Default: DefaultMaxRedirects.
	MaxRedirects int

	// MaxPendingNavigations is the queue buffer size. Requests beyond it
	// fail fast with ErrQueueFull instead of blocking the caller.
	// Default: DefaultMaxPendingNavigations.
	MaxPendingNavigations int

	// Logger is the structured logger for engine diagnostics.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Observers receive transition lifecycle notifications, e.g. for
	// metrics or tracing. Observer failures are isolated per callback.
	Observers []Observer
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxHistorySize:        DefaultMaxHistorySize,
		GuardTimeout:          DefaultGuardTimeout,
		MaxRedirects:          DefaultMaxRedirects,
		MaxPendingNavigations: DefaultMaxPendingNavigations,
	}
}

// Clone returns a copy of the Config. Slices are copied shallowly; the
// definitions themselves are treated as immutable.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Routes != nil {
		clone.Routes = make([]RouteDefinition, len(c.Routes))
		copy(clone.Routes, c.Routes)
	}
	if c.Observers != nil {
		clone.Observers = make([]Observer, len(c.Observers))
		copy(clone.Observers, c.Observers)
	}
	return &clone
}

// withDefaults fills zero fields in place and returns the config.
func (c *Config) withDefaults() *Config {
	if c.MaxHistorySize <= 0 {
		c.MaxHistorySize = DefaultMaxHistorySize
	}
	if c.GuardTimeout <= 0 {
		c.GuardTimeout = DefaultGuardTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.MaxPendingNavigations <= 0 {
		c.MaxPendingNavigations = DefaultMaxPendingNavigations
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
