package nav

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ParseQuery decodes a query string into a Query map.
//
// Pairs are split on "&" and "=", URL-decoded, and coerced: "true"/"false"
// become bool, numeric-looking tokens become int64 or float64, everything
// else stays a string. A key without "=" is stored with a nil value.
// A leading "?" is tolerated.
//
// The coercion means round-tripping is not identity for ambiguous inputs:
// the string "42" comes back as the number 42. That is deliberate ergonomic
// coercion for view code, not a bug.
func ParseQuery(raw string) Query {
	raw = strings.TrimPrefix(raw, "?")
	q := Query{}
	if raw == "" {
		return q
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, hasValue := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			decodedKey = key
		}
		if !hasValue {
			q[decodedKey] = nil
			continue
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			decoded = value
		}
		q[decodedKey] = coerceToken(decoded)
	}
	return q
}

// EncodeQuery serializes a Query back to a string, prefixed with "?" when
// non-empty. Keys with nil (absent) values are skipped. Keys are emitted in
// sorted order so output is deterministic.
func EncodeQuery(q Query) string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k, v := range q {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(formatValue(q[k])))
	}
	return b.String()
}

// coerceToken applies the query value coercion rules to a decoded token.
func coerceToken(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if v, ok := coerceNumber(s); ok {
		return v
	}
	return s
}

// coerceNumber converts a numeric-looking token to int64 or float64.
// The empty string and tokens with leading zeros like "007" are kept as
// strings so identifiers survive untouched.
func coerceNumber(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	if len(s) > 1 && s[0] == '0' && s != "0" && !strings.HasPrefix(s, "0.") {
		return nil, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

// formatValue renders a coerced value back to its token form.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
