package nav

import (
	"strings"
	"sync"
)

// matcherCacheLimit bounds the compiled-pattern cache. When full, the oldest
// entry by insertion order is evicted. Insertion-order eviction (not LRU) is
// a deliberate simplicity tradeoff; eviction order is behavior here, not an
// accident.
const matcherCacheLimit = 500

// segKind classifies a compiled pattern segment.
type segKind int

const (
	segStatic segKind = iota
	segParam
	segWildcard
)

type patternSegment struct {
	kind    segKind
	literal string // static text, or the capture name for params/wildcards
}

// Matcher is a compiled path pattern. It recognizes literal segments, :name
// captures (one non-slash segment each), and at most one trailing * wildcard
// that consumes the remainder of the path.
type Matcher struct {
	pattern  string
	segments []patternSegment
}

// CompilePattern compiles a pattern, consulting the shared bounded cache
// keyed by the pattern string.
func CompilePattern(pattern string) *Matcher {
	return defaultMatcherCache.compile(pattern)
}

// compileUncached builds a Matcher without touching the cache.
func compileUncached(pattern string) *Matcher {
	m := &Matcher{pattern: pattern}
	for _, seg := range splitPath(pattern) {
		switch {
		case strings.HasPrefix(seg, ":"):
			m.segments = append(m.segments, patternSegment{kind: segParam, literal: seg[1:]})
		case strings.HasPrefix(seg, "*"):
			name := seg[1:]
			if name == "" {
				name = "*"
			}
			m.segments = append(m.segments, patternSegment{kind: segWildcard, literal: name})
			// Wildcard consumes the remainder; anything after it is dead.
			return m
		default:
			m.segments = append(m.segments, patternSegment{kind: segStatic, literal: seg})
		}
	}
	return m
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// ParamNames returns the capture names in pattern order.
func (m *Matcher) ParamNames() []string {
	var names []string
	for _, seg := range m.segments {
		if seg.kind != segStatic {
			names = append(names, seg.literal)
		}
	}
	return names
}

// Match attempts the matcher against a concrete path. Captured values are
// coerced to int64/float64 when the captured text parses as a number,
// otherwise kept as the original string.
func (m *Matcher) Match(path string) (Params, bool) {
	parts := splitPath(path)
	params := Params{}

	for i, seg := range m.segments {
		switch seg.kind {
		case segWildcard:
			// Consumes everything left, including nothing.
			params[seg.literal] = strings.Join(parts[i:], "/")
			return params, true
		case segParam:
			if i >= len(parts) {
				return nil, false
			}
			params[seg.literal] = coerceParam(parts[i])
		case segStatic:
			if i >= len(parts) || parts[i] != seg.literal {
				return nil, false
			}
		}
	}

	if len(parts) != len(m.segments) {
		return nil, false
	}
	return params, true
}

// coerceParam applies numeric coercion to a captured segment. Unlike query
// values, params never coerce to bool.
func coerceParam(s string) any {
	if v, ok := coerceNumber(s); ok {
		return v
	}
	return s
}

// splitPath splits a path into segments, ignoring a query string suffix.
func splitPath(path string) []string {
	path, _, _ = strings.Cut(path, "?")
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// matcherCache is a bounded pattern → Matcher cache with insertion-order
// eviction.
type matcherCache struct {
	mu    sync.Mutex
	limit int
	byKey map[string]*Matcher
	order []string // insertion order, oldest first
}

var defaultMatcherCache = newMatcherCache(matcherCacheLimit)

func newMatcherCache(limit int) *matcherCache {
	return &matcherCache{
		limit: limit,
		byKey: make(map[string]*Matcher, limit),
	}
}

func (c *matcherCache) compile(pattern string) *Matcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.byKey[pattern]; ok {
		return m
	}

	m := compileUncached(pattern)
	if len(c.order) >= c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.byKey, oldest)
	}
	c.byKey[pattern] = m
	c.order = append(c.order, pattern)
	return m
}

func (c *matcherCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}
