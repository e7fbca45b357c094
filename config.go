package termo

import (
	"log/slog"
	"time"

	"github.com/termo-dev/termo/pkg/nav"
)

// Config configures a termo application.
type Config struct {
	// Routes are the screens registered at startup.
	Routes []nav.RouteDefinition

	// DefaultRoute, when set, is navigated to as soon as the app starts.
	DefaultRoute string

	// MaxHistorySize bounds the navigation history (default 100).
	MaxHistorySize int

	// GuardTimeout bounds each guard invocation (default 5s).
	GuardTimeout time.Duration

	// Observers receive transition lifecycle notifications, e.g. the
	// navmw Prometheus and tracing observers or an inspect.Server.
	Observers []nav.Observer

	// OnRedraw is called on the engine worker whenever a new screen is
	// mounted or a redraw is requested. Terminal backends hook their
	// render scheduling here. Optional.
	OnRedraw func(view nav.View)

	// Debug enables verbose transition logging.
	Debug bool

	// Logger is the structured logger (default slog.Default()).
	Logger *slog.Logger
}

// withDefaults fills zero values in place and returns the config.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// navConfig translates the app config into the engine's config.
func (c Config) navConfig() *nav.Config {
	return &nav.Config{
		Routes:         c.Routes,
		DefaultRoute:   c.DefaultRoute,
		MaxHistorySize: c.MaxHistorySize,
		GuardTimeout:   c.GuardTimeout,
		Observers:      c.Observers,
		Debug:          c.Debug,
		Logger:         c.Logger,
	}
}
