package nav

import (
	"reflect"
	"testing"
)

func TestMatcherStatic(t *testing.T) {
	m := CompilePattern("/users/list")

	tests := []struct {
		path      string
		wantMatch bool
	}{
		{"/users/list", true},
		{"/users/list/", true},
		{"/users", false},
		{"/users/list/extra", false},
		{"/projects", false},
		{"", false},
	}

	for _, tt := range tests {
		_, ok := m.Match(tt.path)
		if ok != tt.wantMatch {
			t.Errorf("Match(%q) = %v, want %v", tt.path, ok, tt.wantMatch)
		}
	}
}

func TestMatcherRoot(t *testing.T) {
	m := CompilePattern("/")

	if _, ok := m.Match("/"); !ok {
		t.Error("Match(/) = false, want true")
	}
	if _, ok := m.Match("/x"); ok {
		t.Error("Match(/x) = true, want false")
	}
}

func TestMatcherParams(t *testing.T) {
	m := CompilePattern("/users/:id/posts/:slug")

	params, ok := m.Match("/users/42/posts/hello-world")
	if !ok {
		t.Fatal("expected match")
	}
	if got := params["id"]; got != int64(42) {
		t.Errorf("params[id] = %v (%T), want int64 42", got, got)
	}
	if got := params["slug"]; got != "hello-world" {
		t.Errorf("params[slug] = %v, want hello-world", got)
	}

	if _, ok := m.Match("/users/42/posts"); ok {
		t.Error("partial path should not match")
	}
}

func TestMatcherNumericCoercion(t *testing.T) {
	m := CompilePattern("/v/:val")

	tests := []struct {
		segment string
		want    any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.5", 3.5},
		{"0", int64(0)},
		{"007", "007"}, // leading zeros stay strings
		{"abc", "abc"},
		{"1e3", float64(1000)},
	}

	for _, tt := range tests {
		params, ok := m.Match("/v/" + tt.segment)
		if !ok {
			t.Fatalf("Match(/v/%s) failed", tt.segment)
		}
		if got := params["val"]; got != tt.want {
			t.Errorf("coerce(%q) = %v (%T), want %v (%T)", tt.segment, got, got, tt.want, tt.want)
		}
	}
}

func TestMatcherWildcard(t *testing.T) {
	m := CompilePattern("/files/*path")

	params, ok := m.Match("/files/docs/readme.txt")
	if !ok {
		t.Fatal("expected match")
	}
	if got := params["path"]; got != "docs/readme.txt" {
		t.Errorf("params[path] = %v, want docs/readme.txt", got)
	}

	// Wildcard also matches the empty remainder.
	params, ok = m.Match("/files")
	if !ok {
		t.Fatal("expected match on empty remainder")
	}
	if got := params["path"]; got != "" {
		t.Errorf("params[path] = %v, want empty", got)
	}
}

func TestMatcherBareWildcard(t *testing.T) {
	m := CompilePattern("/static/*")

	params, ok := m.Match("/static/a/b")
	if !ok {
		t.Fatal("expected match")
	}
	if got := params["*"]; got != "a/b" {
		t.Errorf("params[*] = %v, want a/b", got)
	}
}

func TestMatcherParamNames(t *testing.T) {
	m := CompilePattern("/a/:x/b/:y/*rest")
	got := m.ParamNames()
	want := []string{"x", "y", "rest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParamNames() = %v, want %v", got, want)
	}
}

func TestMatcherCacheReuse(t *testing.T) {
	c := newMatcherCache(10)

	m1 := c.compile("/users/:id")
	m2 := c.compile("/users/:id")
	if m1 != m2 {
		t.Error("cache should return the same compiled matcher")
	}
}

func TestMatcherCacheInsertionOrderEviction(t *testing.T) {
	c := newMatcherCache(2)

	a := c.compile("/a")
	c.compile("/b")
	// Re-compiling /a must NOT refresh its position: eviction is
	// insertion-order, deliberately not LRU.
	c.compile("/a")
	c.compile("/c") // evicts /a, the oldest insertion

	if c.len() != 2 {
		t.Fatalf("cache len = %d, want 2", c.len())
	}
	if got := c.compile("/a"); got == a {
		t.Error("/a should have been evicted and recompiled")
	}
}
