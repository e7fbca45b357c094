package nav

import "sync"

// HistoryStack is a bounded, cursor-indexed sequence of resolved routes with
// browser-like semantics: pushing while the cursor is not at the end discards
// the "future" entries, and the oldest entry is evicted when the bound is
// exceeded.
//
// Invariant: -1 <= index < len(entries); index == -1 only when empty.
//
// The stack is safe for concurrent use. Only the engine's worker mutates it;
// read accessors return defensive copies.
type HistoryStack struct {
	mu      sync.RWMutex
	entries []Route
	index   int
	maxSize int
}

// NewHistoryStack creates an empty stack bounded to maxSize entries.
func NewHistoryStack(maxSize int) *HistoryStack {
	if maxSize <= 0 {
		maxSize = DefaultMaxHistorySize
	}
	return &HistoryStack{index: -1, maxSize: maxSize}
}

// PushForward appends a route after the cursor, discarding any entries past
// the current position first. If the bound is exceeded the oldest entry is
// evicted and the cursor decremented to stay valid.
func (h *HistoryStack) PushForward(route Route) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, route)
	h.index = len(h.entries) - 1

	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
		h.index--
	}
}

// Replace overwrites the entry at the cursor. Replacing into an empty stack
// behaves like PushForward, producing one entry at index 0.
func (h *HistoryStack) Replace(route Route) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < 0 {
		h.entries = append(h.entries, route)
		h.index = 0
		return
	}
	h.entries[h.index] = route
}

// MoveTo sets the cursor. Returns false when the index is out of range; the
// cursor is unchanged in that case.
func (h *HistoryStack) MoveTo(index int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.entries) {
		return false
	}
	h.index = index
	return true
}

// Current returns the entry at the cursor, or a synthetic unmatched route
// when the stack is empty.
func (h *HistoryStack) Current() Route {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.index < 0 {
		return unmatchedRoute()
	}
	return h.entries[h.index].Clone()
}

// At returns a copy of the entry at index.
func (h *HistoryStack) At(index int) (Route, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if index < 0 || index >= len(h.entries) {
		return Route{}, false
	}
	return h.entries[index].Clone(), true
}

// Index returns the cursor position, -1 when empty.
func (h *HistoryStack) Index() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

// Len returns the number of entries.
func (h *HistoryStack) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// CanGoBack reports whether an older entry exists before the cursor.
func (h *HistoryStack) CanGoBack() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index > 0
}

// CanGoForward reports whether a newer entry exists past the cursor.
func (h *HistoryStack) CanGoForward() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index < len(h.entries)-1
}

// Entries returns a copy of the stack, oldest first.
func (h *HistoryStack) Entries() []Route {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Route, len(h.entries))
	for i, r := range h.entries {
		out[i] = r.Clone()
	}
	return out
}

// IsEmpty reports whether the stack has no entries.
func (h *HistoryStack) IsEmpty() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries) == 0
}
