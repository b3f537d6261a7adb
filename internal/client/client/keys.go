package client

import "strings"

// CamelizeKeys returns a copy of v with every object key renamed from
// snake_case to camelCase, recursing into arrays and objects. Other values
// are returned unchanged. v is expected to come from json.Unmarshal into any.
func CamelizeKeys(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = CamelizeKeys(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[snakeToCamel(k)] = CamelizeKeys(item)
		}
		return out
	default:
		return v
	}
}

// snakeToCamel upper-cases every lowercase ASCII letter that follows an
// underscore and drops that underscore. Other underscores are kept.
func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
