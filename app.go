package termo

import (
	"log/slog"
	"sync"

	"github.com/termo-dev/termo/pkg/nav"
)

// App is the application shell: it owns the navigation engine, holds the
// currently mounted screen, and tells the terminal backend when to redraw.
//
// App implements nav.Host; the engine calls Mount and MarkDirty from its
// worker goroutine, so both are internally synchronized.
type App struct {
	config Config
	logger *slog.Logger
	engine *nav.Engine

	mu    sync.RWMutex
	view  nav.View
	dirty bool
}

// New creates an application with the given configuration and starts its
// navigation engine.
func New(cfg Config) *App {
	cfg = cfg.withDefaults()

	app := &App{
		config: cfg,
		logger: cfg.Logger,
	}
	app.engine = nav.New(app, cfg.navConfig())
	return app
}

// Close stops the navigation engine. Pending navigations fail.
func (a *App) Close() {
	a.engine.Close()
}

// Nav returns the navigation engine.
func (a *App) Nav() *nav.Engine {
	return a.engine
}

// View returns the currently mounted screen, or nil before the first
// successful navigation.
func (a *App) View() nav.View {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.view
}

// ConsumeDirty reports whether a redraw was requested since the last call,
// and clears the flag. Render loops poll this between frames.
func (a *App) ConsumeDirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.dirty
	a.dirty = false
	return d
}

// Mount implements nav.Host.
func (a *App) Mount(view nav.View) {
	a.mu.Lock()
	a.view = view
	a.mu.Unlock()
}

// MarkDirty implements nav.Host.
func (a *App) MarkDirty() {
	a.mu.Lock()
	a.dirty = true
	view := a.view
	a.mu.Unlock()

	if a.config.OnRedraw != nil {
		a.config.OnRedraw(view)
	}
}
