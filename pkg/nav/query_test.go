package nav

import (
	"reflect"
	"testing"
)

func TestParseQueryCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"", Query{}},
		{"?", Query{}},
		{"a=1", Query{"a": int64(1)}},
		{"a=1.5", Query{"a": 1.5}},
		{"a=true&b=false", Query{"a": true, "b": false}},
		{"name=alice", Query{"name": "alice"}},
		{"id=007", Query{"id": "007"}}, // leading zeros stay strings
		{"q=hello%20world", Query{"q": "hello world"}},
		{"flag", Query{"flag": nil}}, // key without value
		{"a=1&a=2", Query{"a": int64(2)}},
		{"empty=", Query{"empty": ""}},
	}

	for _, tt := range tests {
		got := ParseQuery(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseQuery(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"empty", Query{}, ""},
		{"nil map", nil, ""},
		{"single", Query{"a": int64(1)}, "?a=1"},
		{"sorted keys", Query{"b": int64(2), "a": int64(1)}, "?a=1&b=2"},
		{"bool and float", Query{"x": true, "y": 1.5}, "?x=true&y=1.5"},
		{"escaping", Query{"q": "hello world"}, "?q=hello+world"},
		{"absent skipped", Query{"a": int64(1), "gone": nil}, "?a=1"},
		{"all absent", Query{"gone": nil}, ""},
	}

	for _, tt := range tests {
		if got := EncodeQuery(tt.q); got != tt.want {
			t.Errorf("%s: EncodeQuery(%v) = %q, want %q", tt.name, tt.q, got, tt.want)
		}
	}
}

func TestQueryRoundTripCoerces(t *testing.T) {
	// Ambiguous inputs do not round-trip to identity: the string "42"
	// becomes the number 42. This is intentional coercion.
	q := ParseQuery("n=42")
	if got := q["n"]; got != int64(42) {
		t.Fatalf("q[n] = %v (%T), want int64 42", got, got)
	}
	if got := EncodeQuery(q); got != "?n=42" {
		t.Errorf("EncodeQuery = %q, want ?n=42", got)
	}
}
