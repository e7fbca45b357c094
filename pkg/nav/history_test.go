package nav

import "testing"

func route(path string) Route {
	return Route{Path: path, Params: Params{}, Query: Query{}}
}

func historyPaths(h *HistoryStack) []string {
	entries := h.Entries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

func TestHistoryPushForward(t *testing.T) {
	h := NewHistoryStack(10)

	if h.Index() != -1 {
		t.Fatalf("empty index = %d, want -1", h.Index())
	}

	h.PushForward(route("/a"))
	h.PushForward(route("/b"))

	if h.Len() != 2 || h.Index() != 1 {
		t.Errorf("len=%d index=%d, want 2/1", h.Len(), h.Index())
	}
	if h.Current().Path != "/b" {
		t.Errorf("current = %s, want /b", h.Current().Path)
	}
}

func TestHistoryPushTruncatesFuture(t *testing.T) {
	h := NewHistoryStack(10)
	h.PushForward(route("/a"))
	h.PushForward(route("/b"))
	h.PushForward(route("/c"))
	h.MoveTo(0)

	h.PushForward(route("/d"))

	got := historyPaths(h)
	want := []string{"/a", "/d"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("entries = %v, want %v", got, want)
	}
	if h.Index() != 1 {
		t.Errorf("index = %d, want 1", h.Index())
	}
}

func TestHistoryBoundedEviction(t *testing.T) {
	h := NewHistoryStack(2)
	h.PushForward(route("/a"))
	h.PushForward(route("/b"))
	h.PushForward(route("/c"))

	got := historyPaths(h)
	if len(got) != 2 || got[0] != "/b" || got[1] != "/c" {
		t.Errorf("entries = %v, want [/b /c]", got)
	}
	if h.Index() != 1 {
		t.Errorf("index = %d, want 1 after eviction", h.Index())
	}
	if h.Current().Path != "/c" {
		t.Errorf("current = %s, want /c", h.Current().Path)
	}
}

func TestHistoryReplace(t *testing.T) {
	h := NewHistoryStack(10)
	h.PushForward(route("/a"))
	h.Replace(route("/b"))

	if h.Len() != 1 || h.Current().Path != "/b" {
		t.Errorf("len=%d current=%s, want 1 //b", h.Len(), h.Current().Path)
	}
}

func TestHistoryReplaceIntoEmpty(t *testing.T) {
	h := NewHistoryStack(10)
	h.Replace(route("/a"))

	if h.Len() != 1 || h.Index() != 0 {
		t.Errorf("len=%d index=%d, want 1/0", h.Len(), h.Index())
	}
}

func TestHistoryMoveTo(t *testing.T) {
	h := NewHistoryStack(10)
	h.PushForward(route("/a"))
	h.PushForward(route("/b"))

	tests := []struct {
		index int
		want  bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := h.MoveTo(tt.index); got != tt.want {
			t.Errorf("MoveTo(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestHistoryCanGoBackForward(t *testing.T) {
	h := NewHistoryStack(10)

	if h.CanGoBack() || h.CanGoForward() {
		t.Error("empty history should not allow traversal")
	}

	h.PushForward(route("/a"))
	h.PushForward(route("/b"))

	if !h.CanGoBack() {
		t.Error("CanGoBack should be true at the end")
	}
	if h.CanGoForward() {
		t.Error("CanGoForward should be false at the end")
	}

	h.MoveTo(0)
	if h.CanGoBack() {
		t.Error("CanGoBack should be false at index 0")
	}
	if !h.CanGoForward() {
		t.Error("CanGoForward should be true at index 0")
	}
}

func TestHistoryCurrentEmptyIsSynthetic(t *testing.T) {
	h := NewHistoryStack(10)

	current := h.Current()
	if current.Path != "" || current.Matched != nil {
		t.Errorf("empty current = %+v, want synthetic unmatched route", current)
	}
}

func TestHistoryEntriesAreCopies(t *testing.T) {
	h := NewHistoryStack(10)
	r := route("/a")
	r.Params["id"] = int64(1)
	h.PushForward(r)

	entries := h.Entries()
	entries[0].Params["id"] = int64(99)

	if h.Current().Params["id"] != int64(1) {
		t.Error("Entries() must return defensive copies")
	}
}
