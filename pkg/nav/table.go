package nav

import "sync"

// RouteTable is an ordered collection of route definitions. Lookup is first
// match wins, so insertion order is significant and preserved exactly.
//
// The table is safe for concurrent use: the engine's worker mutates it during
// transitions while callers read copies through the engine's accessors.
type RouteTable struct {
	mu   sync.RWMutex
	defs []RouteDefinition
}

// NewRouteTable creates a table pre-populated with the given definitions, in
// order.
func NewRouteTable(defs ...RouteDefinition) *RouteTable {
	t := &RouteTable{}
	for _, def := range defs {
		t.Add(def)
	}
	return t
}

// Add appends a definition. If an entry with the same path pattern exists it
// is removed first, then the new one appended: replace-by-path, not merge.
func (t *RouteTable) Add(def RouteDefinition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.removeLocked(def.Path)
	t.defs = append(t.defs, def)
}

// Remove deletes the first entry with exactly the given path pattern.
// No-op when absent.
func (t *RouteTable) Remove(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(path)
}

func (t *RouteTable) removeLocked(path string) {
	for i, def := range t.defs {
		if def.Path == path {
			t.defs = append(t.defs[:i], t.defs[i+1:]...)
			return
		}
	}
}

// Find returns the first definition (in insertion order) whose pattern
// matches the path, together with the extracted params.
func (t *RouteTable) Find(path string) (*RouteDefinition, Params, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.defs {
		if params, ok := CompilePattern(t.defs[i].Path).Match(path); ok {
			// Copy so the caller's Route keeps a stable snapshot even if
			// the table mutates afterwards.
			def := t.defs[i]
			return &def, params, true
		}
	}
	return nil, nil, false
}

// FindByName returns the definition with the given name.
func (t *RouteTable) FindByName(name string) (*RouteDefinition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if name == "" {
		return nil, false
	}
	for i := range t.defs {
		if t.defs[i].Name == name {
			def := t.defs[i]
			return &def, true
		}
	}
	return nil, false
}

// Has reports whether an entry with exactly the given path pattern exists.
func (t *RouteTable) Has(path string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, def := range t.defs {
		if def.Path == path {
			return true
		}
	}
	return false
}

// Definitions returns a copy of the table in insertion order.
func (t *RouteTable) Definitions() []RouteDefinition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]RouteDefinition, len(t.defs))
	copy(out, t.defs)
	return out
}

// Len returns the number of definitions.
func (t *RouteTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.defs)
}
