package nav

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Host is the application-side surface the engine drives. Mount hands over a
// freshly constructed view; MarkDirty requests a redraw. Both must be
// idempotent and safe to call repeatedly.
type Host interface {
	Mount(view View)
	MarkDirty()
}

// AfterHook runs after a transition settled successfully. Hook panics are
// recovered and logged, never interrupting the remaining hooks or the
// overall result.
type AfterHook func(to, from *Route, direction Direction)

// Engine is the navigation orchestrator: it resolves paths against the route
// table, drives candidates through the guard pipeline (following redirects up
// to a bounded depth), mutates the history stack, constructs views, and fires
// lifecycle notifications.
//
// The engine owns its RouteTable and HistoryStack exclusively; external code
// interacts only through the public operations, all of which are serialized
// through a single worker goroutine.
type Engine struct {
	cfg      *Config
	logger   *slog.Logger
	host     Host
	table    *RouteTable
	history  *HistoryStack
	queue    *navigationQueue
	pipeline *Pipeline

	// Guard, hook, and observer registries. Mutated synchronously by
	// callers; the worker snapshots them before iterating so a callback
	// can safely unsubscribe itself mid-flight.
	regMu      sync.Mutex
	guards     []guardEntry
	afterHooks []hookEntry
	observers  []observerEntry
	nextSubID  int

	viewMu sync.RWMutex
	view   View

	closeOnce sync.Once
	done      chan struct{}
	closed    bool
	closedMu  sync.RWMutex
	wg        sync.WaitGroup
}

type guardEntry struct {
	id    int
	guard Guard
}

type hookEntry struct {
	id   int
	hook AfterHook
}

type observerEntry struct {
	id  int
	obs Observer
}

// New creates an engine bound to the given host and starts its worker.
// If cfg.DefaultRoute is set, a push to it is queued immediately.
func New(host Host, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.Clone().withDefaults()

	e := &Engine{
		cfg:     cfg,
		logger:  cfg.Logger,
		host:    host,
		table:   NewRouteTable(cfg.Routes...),
		history: NewHistoryStack(cfg.MaxHistorySize),
		done:    make(chan struct{}),
	}
	e.queue = newNavigationQueue(cfg.MaxPendingNavigations, e.logger)
	e.pipeline = NewPipeline(cfg.GuardTimeout, e.logger)
	for _, obs := range cfg.Observers {
		e.observers = append(e.observers, observerEntry{id: e.nextSubID, obs: obs})
		e.nextSubID++
	}

	e.wg.Add(1)
	go e.run()

	if cfg.DefaultRoute != "" {
		req := &navRequest{mode: modePush, path: cfg.DefaultRoute, done: make(chan error, 1)}
		if err := e.queue.enqueue(req); err != nil {
			e.logger.Warn("default route navigation dropped", "path", cfg.DefaultRoute, "error", err)
		}
	}
	return e
}

// Close stops the worker. Pending and subsequent requests fail with
// ErrEngineClosed. Close blocks until the in-flight transition, if any,
// settles.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.closedMu.Lock()
		e.closed = true
		e.closedMu.Unlock()
		close(e.done)
	})
	e.wg.Wait()
}

func (e *Engine) isClosed() bool {
	e.closedMu.RLock()
	defer e.closedMu.RUnlock()
	return e.closed
}

// =============================================================================
// Public navigation operations
// =============================================================================

// NavigateOptions configures a navigation request.
type NavigateOptions struct {
	// Query overrides query parameters parsed from the path string.
	// On key collision the explicit query wins.
	Query Query

	// Params fills :name segments for PushNamed.
	Params Params
}

// NavigateOption is a functional option for the navigation operations.
type NavigateOption func(*NavigateOptions)

// WithQuery supplies explicit query parameters. They win over parameters
// parsed from the path string on key collision.
func WithQuery(q Query) NavigateOption {
	return func(o *NavigateOptions) { o.Query = q }
}

// WithParams supplies route parameters for PushNamed.
func WithParams(p Params) NavigateOption {
	return func(o *NavigateOptions) { o.Params = p }
}

func buildNavigateOptions(opts []NavigateOption) NavigateOptions {
	var o NavigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Push navigates forward to path, pushing a new history entry on success.
// It blocks until the queued request settles and reports success.
func (e *Engine) Push(path string, opts ...NavigateOption) bool {
	o := buildNavigateOptions(opts)
	return e.dispatch(&navRequest{mode: modePush, path: path, query: o.Query})
}

// Replace navigates to path, overwriting the current history entry.
func (e *Engine) Replace(path string, opts ...NavigateOption) bool {
	o := buildNavigateOptions(opts)
	return e.dispatch(&navRequest{mode: modeReplace, path: path, query: o.Query})
}

// PushNamed navigates to the route registered under name, filling its
// pattern from WithParams. It fails immediately when the name is unknown or
// a required parameter is missing.
func (e *Engine) PushNamed(name string, opts ...NavigateOption) bool {
	o := buildNavigateOptions(opts)

	def, ok := e.table.FindByName(name)
	if !ok {
		e.logger.Warn("pushNamed: unknown route name", "name", name)
		return false
	}
	path, err := expandPattern(def.Path, o.Params)
	if err != nil {
		e.logger.Warn("pushNamed: cannot build path", "name", name, "error", err)
		return false
	}
	return e.dispatch(&navRequest{mode: modePush, path: path, query: o.Query})
}

// Back moves one entry toward older history. Returns false when out of range
// or aborted by a guard.
func (e *Engine) Back() bool { return e.Go(-1) }

// Forward moves one entry toward newer history.
func (e *Engine) Forward() bool { return e.Go(1) }

// Go moves the history cursor by delta, running the full guard pipeline
// against the target entry exactly like a push. On a guard redirect the
// traversal intent is abandoned in favor of a forward navigation to the
// redirect target.
func (e *Engine) Go(delta int) bool {
	return e.dispatch(&navRequest{mode: modeTraverse, delta: delta})
}

// dispatch queues the request and blocks until the worker settles it.
func (e *Engine) dispatch(req *navRequest) bool {
	if e.isClosed() {
		return false
	}
	req.done = make(chan error, 1)
	if err := e.queue.enqueue(req); err != nil {
		return false
	}
	select {
	case err := <-req.done:
		if err != nil {
			if e.cfg.Debug {
				e.logger.Debug("navigation failed", "path", req.path, "error", err)
			}
			return false
		}
		return true
	case <-e.done:
		return false
	}
}

// =============================================================================
// Public accessors
// =============================================================================

// Current returns the route at the history cursor, or a synthetic unmatched
// route when history is empty. The result is a defensive copy.
func (e *Engine) Current() Route {
	return e.history.Current()
}

// CurrentView returns the most recently mounted view, or nil.
func (e *Engine) CurrentView() View {
	e.viewMu.RLock()
	defer e.viewMu.RUnlock()
	return e.view
}

// History returns a copy of the history stack, oldest first.
func (e *Engine) History() []Route {
	return e.history.Entries()
}

// HistoryIndex returns the history cursor position, -1 when empty.
func (e *Engine) HistoryIndex() int {
	return e.history.Index()
}

// CanGoBack reports whether Back can move the cursor.
func (e *Engine) CanGoBack() bool {
	return e.history.CanGoBack()
}

// CanGoForward reports whether Forward can move the cursor.
func (e *Engine) CanGoForward() bool {
	return e.history.CanGoForward()
}

// AddRoute registers a definition, replacing any existing one with the same
// path pattern.
func (e *Engine) AddRoute(def RouteDefinition) {
	e.table.Add(def)
}

// RemoveRoute removes the definition with exactly the given path pattern.
func (e *Engine) RemoveRoute(path string) {
	e.table.Remove(path)
}

// Routes returns a copy of the registered definitions in insertion order.
func (e *Engine) Routes() []RouteDefinition {
	return e.table.Definitions()
}

// HasRoute reports whether a definition with exactly the given path pattern
// is registered.
func (e *Engine) HasRoute(path string) bool {
	return e.table.Has(path)
}

// Resolve matches a path without navigating: no guard runs, no history or
// view mutation. The query in the path string is merged with WithQuery
// (explicit wins).
func (e *Engine) Resolve(path string, opts ...NavigateOption) Route {
	o := buildNavigateOptions(opts)
	return e.resolveRoute(path, o.Query)
}

// BeforeEach registers a global guard, run in registration order before
// every transition. The returned function unsubscribes it.
func (e *Engine) BeforeEach(guard Guard) func() {
	e.regMu.Lock()
	defer e.regMu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.guards = append(e.guards, guardEntry{id: id, guard: guard})

	return func() {
		e.regMu.Lock()
		defer e.regMu.Unlock()
		for i, entry := range e.guards {
			if entry.id == id {
				e.guards = append(e.guards[:i], e.guards[i+1:]...)
				return
			}
		}
	}
}

// AfterEach registers a hook fired after every successful transition. The
// returned function unsubscribes it.
func (e *Engine) AfterEach(hook AfterHook) func() {
	e.regMu.Lock()
	defer e.regMu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.afterHooks = append(e.afterHooks, hookEntry{id: id, hook: hook})

	return func() {
		e.regMu.Lock()
		defer e.regMu.Unlock()
		for i, entry := range e.afterHooks {
			if entry.id == id {
				e.afterHooks = append(e.afterHooks[:i], e.afterHooks[i+1:]...)
				return
			}
		}
	}
}

// AddObserver registers a transition observer. Observers passed through
// Config are registered at construction; this adds one afterwards, e.g. an
// inspector created around an existing engine. The returned function
// unsubscribes it.
func (e *Engine) AddObserver(obs Observer) func() {
	e.regMu.Lock()
	defer e.regMu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.observers = append(e.observers, observerEntry{id: id, obs: obs})

	return func() {
		e.regMu.Lock()
		defer e.regMu.Unlock()
		for i, entry := range e.observers {
			if entry.id == id {
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// =============================================================================
// Worker
// =============================================================================

// run drains the navigation queue strictly FIFO, one request to completion
// (guards, redirect chasing, mounting, notification) before the next.
func (e *Engine) run() {
	defer e.wg.Done()
	for {
		select {
		case <-e.done:
			e.drain()
			return
		case req := <-e.queue.requests:
			req.done <- e.process(req)
		}
	}
}

// drain fails any requests that were queued before shutdown.
func (e *Engine) drain() {
	for {
		select {
		case req := <-e.queue.requests:
			req.done <- ErrEngineClosed
		default:
			return
		}
	}
}

// process executes one queued request and notifies observers around it.
func (e *Engine) process(req *navRequest) error {
	start := time.Now()
	direction := req.direction()
	from := e.currentRoutePtr()

	e.notifyStarted(req.path, direction)

	var to *Route
	var err error
	switch req.mode {
	case modeTraverse:
		to, err = e.traverse(req.delta)
	default:
		to, err = e.navigate(req.path, req.query, req.mode, 0)
	}

	if e.cfg.Debug {
		if err != nil {
			e.logger.Debug("transition failed",
				"direction", direction, "path", req.path, "error", err,
				"elapsed", time.Since(start))
		} else {
			e.logger.Debug("transition complete",
				"direction", direction, "path", to.Path,
				"history_len", e.history.Len(), "index", e.history.Index(),
				"elapsed", time.Since(start))
		}
	}

	e.notifyFinished(to, from, direction, err, time.Since(start))
	return err
}

func (r *navRequest) direction() Direction {
	switch {
	case r.mode == modeReplace:
		return DirectionReplace
	case r.mode == modeTraverse && r.delta < 0:
		return DirectionBack
	default:
		return DirectionForward
	}
}

// navigate runs the forward/replace transition algorithm, chasing guard
// redirects up to the configured depth.
func (e *Engine) navigate(path string, query Query, mode navMode, depth int) (*Route, error) {
	if depth > e.cfg.MaxRedirects {
		return nil, &NavError{Op: "navigate", Path: path, Err: ErrRedirectLoop}
	}

	to := e.resolveRoute(path, query)
	from := e.currentRoutePtr()

	decision := e.pipeline.Run(context.Background(), e.snapshotGuards(), routeGuard(&to), &to, from)
	switch {
	case decision.IsAbort():
		return &to, &NavError{Op: "navigate", Path: path, Err: ErrGuardAbort}
	case decision.IsRedirect():
		if e.cfg.Debug {
			e.logger.Debug("guard redirect", "from", path, "to", decision.RedirectPath(), "depth", depth)
		}
		return e.navigate(decision.RedirectPath(), nil, mode, depth+1)
	}

	if mode == modeReplace {
		e.history.Replace(to.Clone())
	} else {
		e.history.PushForward(to.Clone())
	}

	direction := DirectionForward
	if mode == modeReplace {
		direction = DirectionReplace
	}
	if err := e.completeTransition(&to, from, direction); err != nil {
		return &to, err
	}
	return &to, nil
}

// traverse runs Back/Forward/Go. The guard pipeline is never bypassed during
// history traversal; on proceed the cursor moves instead of pushing, and on
// redirect the traversal falls through to a forward navigation.
func (e *Engine) traverse(delta int) (*Route, error) {
	idx := e.history.Index() + delta
	to, ok := e.history.At(idx)
	if !ok {
		return nil, &NavError{Op: "go", Err: ErrInvalidTarget}
	}
	from := e.currentRoutePtr()

	decision := e.pipeline.Run(context.Background(), e.snapshotGuards(), routeGuard(&to), &to, from)
	switch {
	case decision.IsAbort():
		return &to, &NavError{Op: "go", Path: to.Path, Err: ErrGuardAbort}
	case decision.IsRedirect():
		return e.navigate(decision.RedirectPath(), nil, modePush, 1)
	}

	e.history.MoveTo(idx)

	direction := DirectionForward
	if delta < 0 {
		direction = DirectionBack
	}
	if err := e.completeTransition(&to, from, direction); err != nil {
		return &to, err
	}
	return &to, nil
}

// completeTransition constructs and mounts the view (history is already
// mutated at this point; a factory failure leaves it mutated, which is
// accepted, observable behavior) and fires the after-hooks.
func (e *Engine) completeTransition(to, from *Route, direction Direction) error {
	if to.Matched != nil && to.Matched.View != nil {
		view, err := e.buildView(to)
		if err != nil {
			e.logger.Warn("view construction failed", "path", to.Path, "error", err)
			return err
		}
		e.viewMu.Lock()
		e.view = view
		e.viewMu.Unlock()

		e.host.Mount(view)
		e.host.MarkDirty()
	}

	e.fireAfterHooks(to, from, direction)
	return nil
}

// buildView invokes the route's view factory with panic containment.
func (e *Engine) buildView(to *Route) (view View, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ViewError{Path: to.Path, Panic: r, Stack: debug.Stack()}
		}
	}()

	view, ferr := to.Matched.View(cloneValueMap(to.Params), cloneValueMap(to.Query))
	if ferr != nil {
		return nil, &ViewError{Path: to.Path, Err: ferr}
	}
	return view, nil
}

// resolveRoute matches path against the table and merges query parameters
// from the path string with the explicitly supplied ones (explicit wins).
func (e *Engine) resolveRoute(path string, query Query) Route {
	pathOnly, rawQuery, _ := strings.Cut(path, "?")
	q := ParseQuery(rawQuery)
	for k, v := range query {
		q[k] = v
	}

	route := Route{Path: pathOnly, Params: Params{}, Query: q, Meta: map[string]any{}}
	def, params, ok := e.table.Find(pathOnly)
	if !ok {
		return route
	}

	route.Name = def.Name
	route.Params = params
	route.Matched = def
	for k, v := range def.Meta {
		route.Meta[k] = v
	}
	return route
}

// currentRoutePtr returns the current route, or nil when history is empty.
// Guards and hooks receive nil rather than a synthetic route so they can
// distinguish the very first navigation.
func (e *Engine) currentRoutePtr() *Route {
	if e.history.IsEmpty() {
		return nil
	}
	r := e.history.Current()
	return &r
}

// snapshotGuards copies the guard registry so a guard unsubscribing (or
// subscribing) from within its own callback cannot corrupt the iteration.
func (e *Engine) snapshotGuards() []Guard {
	e.regMu.Lock()
	defer e.regMu.Unlock()

	out := make([]Guard, len(e.guards))
	for i, entry := range e.guards {
		out[i] = entry.guard
	}
	return out
}

// fireAfterHooks runs the after-hook registry snapshot. Each hook is
// isolated: a panic is recovered and logged, the remaining hooks still run.
func (e *Engine) fireAfterHooks(to, from *Route, direction Direction) {
	e.regMu.Lock()
	hooks := make([]AfterHook, len(e.afterHooks))
	for i, entry := range e.afterHooks {
		hooks[i] = entry.hook
	}
	e.regMu.Unlock()

	for _, hook := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("after-hook panicked",
						"to", to.Path, "panic", r, "stack", string(debug.Stack()))
				}
			}()
			hook(to, from, direction)
		}()
	}
}

func (e *Engine) snapshotObservers() []Observer {
	e.regMu.Lock()
	defer e.regMu.Unlock()

	out := make([]Observer, len(e.observers))
	for i, entry := range e.observers {
		out[i] = entry.obs
	}
	return out
}

func (e *Engine) notifyStarted(path string, direction Direction) {
	for _, obs := range e.snapshotObservers() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("observer panicked in TransitionStarted", "panic", r)
				}
			}()
			obs.TransitionStarted(path, direction)
		}()
	}
}

func (e *Engine) notifyFinished(to, from *Route, direction Direction, err error, elapsed time.Duration) {
	for _, obs := range e.snapshotObservers() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("observer panicked in TransitionFinished", "panic", r)
				}
			}()
			obs.TransitionFinished(to, from, direction, err, elapsed)
		}()
	}
}

// routeGuard extracts the per-route BeforeEnter guard from a resolved route.
func routeGuard(r *Route) Guard {
	if r.Matched == nil {
		return nil
	}
	return r.Matched.BeforeEnter
}

// expandPattern fills a route pattern's :name and * segments from params.
// Every capture in the pattern is required.
func expandPattern(pattern string, params Params) (string, error) {
	segments := splitPath(pattern)
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			v, ok := params[name]
			if !ok {
				return "", fmt.Errorf("missing param %q: %w", name, ErrInvalidTarget)
			}
			out = append(out, formatValue(v))
		case strings.HasPrefix(seg, "*"):
			name := seg[1:]
			if name == "" {
				name = "*"
			}
			v, ok := params[name]
			if !ok {
				return "", fmt.Errorf("missing param %q: %w", name, ErrInvalidTarget)
			}
			out = append(out, formatValue(v))
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}
