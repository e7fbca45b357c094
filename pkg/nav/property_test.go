package nav

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestHistoryInvariantsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// ops: 0 = push, 1 = back, 2 = forward, 3 = replace
	properties.Property("history stays bounded with a valid cursor", prop.ForAll(
		func(maxSize int, ops []int) bool {
			h := NewHistoryStack(maxSize)
			for i, op := range ops {
				switch op {
				case 0:
					h.PushForward(route("/p"))
				case 1:
					if h.CanGoBack() {
						h.MoveTo(h.Index() - 1)
					}
				case 2:
					if h.CanGoForward() {
						h.MoveTo(h.Index() + 1)
					}
				case 3:
					h.Replace(route("/r"))
				}
				if h.Len() > maxSize {
					t.Logf("op %d: len %d exceeds max %d", i, h.Len(), maxSize)
					return false
				}
				if h.Len() == 0 {
					if h.Index() != -1 {
						return false
					}
				} else if h.Index() < 0 || h.Index() >= h.Len() {
					t.Logf("op %d: index %d out of range for len %d", i, h.Index(), h.Len())
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("push after back drops the forward entries", prop.ForAll(
		func(pushes int, backs int) bool {
			h := NewHistoryStack(100)
			for i := 0; i < pushes; i++ {
				h.PushForward(route("/p"))
			}
			for i := 0; i < backs && h.CanGoBack(); i++ {
				h.MoveTo(h.Index() - 1)
			}
			h.PushForward(route("/new"))
			return h.Index() == h.Len()-1 && h.Current().Path == "/new"
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

func TestQueryEncodeParseProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Integer values survive an encode/parse cycle exactly.
	properties.Property("int64 values round-trip", prop.ForAll(
		func(key string, val int64) bool {
			q := Query{key: val}
			parsed := ParseQuery(strings.TrimPrefix(EncodeQuery(q), "?"))
			return parsed[key] == val
		},
		gen.Identifier(),
		gen.Int64(),
	))

	properties.Property("bool values round-trip", prop.ForAll(
		func(key string, val bool) bool {
			q := Query{key: val}
			parsed := ParseQuery(strings.TrimPrefix(EncodeQuery(q), "?"))
			return parsed[key] == val
		},
		gen.Identifier(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestMatcherStaticSelfMatchProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("a static pattern matches its own path", prop.ForAll(
		func(segments []string) bool {
			path := "/" + strings.Join(segments, "/")
			m := CompilePattern(path)
			_, ok := m.Match(path)
			return ok
		},
		gen.SliceOfN(3, gen.Identifier()),
	))

	properties.TestingRun(t)
}
