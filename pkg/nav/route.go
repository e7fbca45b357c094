package nav

// View is the opaque handle produced by a route's view factory. The engine
// never inspects it; it is handed to the host's Mount callback as-is.
type View = any

// Params holds route parameters extracted from a matched path.
// Values are string, int64, or float64 depending on coercion.
type Params map[string]any

// Query holds decoded query parameters. Values are string, int64, float64,
// bool, or nil for a key that appeared without a value.
type Query map[string]any

// ViewFactory constructs the view for a matched route. A returned error (or a
// panic) is contained by the engine and reported as a failed navigation; the
// view is not mounted.
type ViewFactory func(params Params, query Query) (View, error)

// Direction describes how a transition mutates history.
type Direction string

const (
	// DirectionForward pushes a new entry, truncating any forward history.
	DirectionForward Direction = "forward"

	// DirectionBack moves the history cursor toward older entries.
	DirectionBack Direction = "back"

	// DirectionReplace overwrites the current entry in place.
	DirectionReplace Direction = "replace"
)

// RouteDefinition is the static configuration for a route, registered by the
// application at setup time or via Engine.AddRoute.
type RouteDefinition struct {
	// Path is the route pattern: static segments, :name captures, and at
	// most one trailing * wildcard (e.g. "/users/:id", "/files/*path").
	Path string

	// Name is an optional unique name for PushNamed lookups.
	Name string

	// View constructs the view when the route is navigated to.
	// A route without a view factory still matches; nothing is mounted.
	View ViewFactory

	// Meta is an opaque bag copied onto every Route resolved from this
	// definition.
	Meta map[string]any

	// BeforeEnter is an optional per-route guard, run after all global
	// guards have proceeded.
	BeforeEnter Guard
}

// Route is the resolved result of matching a path. It is a value type,
// created fresh on every match attempt and never mutated afterwards.
type Route struct {
	// Path is the concrete path that was matched (query string stripped).
	Path string

	// Name is the matched definition's name, if any.
	Name string

	// Params are the values captured by :name and * segments.
	Params Params

	// Query are the merged query parameters for this navigation.
	Query Query

	// Meta is copied from the matched definition, or empty.
	Meta map[string]any

	// Matched is the definition this route resolved to, or nil when the
	// path matched no route.
	Matched *RouteDefinition
}

// Clone returns a deep copy of the route. Accessors that expose engine state
// return clones so callers cannot mutate internal maps by reference.
func (r Route) Clone() Route {
	c := r
	c.Params = cloneValueMap(r.Params)
	c.Query = cloneValueMap(r.Query)
	if r.Meta != nil {
		c.Meta = make(map[string]any, len(r.Meta))
		for k, v := range r.Meta {
			c.Meta[k] = v
		}
	}
	return c
}

func cloneValueMap[M ~map[string]any](m M) M {
	if m == nil {
		return nil
	}
	c := make(M, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// unmatchedRoute is the synthetic route reported when history is empty.
func unmatchedRoute() Route {
	return Route{Params: Params{}, Query: Query{}, Meta: map[string]any{}}
}
