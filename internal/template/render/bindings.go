package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Bindings maps variable names to values. A value is a string, a
// boolean, an ordered list ([]interface{} of strings or maps), or a
// nested map reached through dotted lookups. Bindings are read-only
// during a render; loops and permutations extend them by overlaying a
// copy, never by mutating the original.
type Bindings map[string]interface{}

// Lookup resolves a possibly dotted path ("name" or "name.field.sub")
// against the bindings. Returns (nil, false) when any step is missing.
func (b Bindings) Lookup(path string) (interface{}, bool) {
	parts := strings.Split(path, ".")

	var current interface{} = map[string]interface{}(b)
	for _, part := range parts {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// List returns the list value bound to a top-level name, or false when
// the name is unbound or bound to a non-list value.
func (b Bindings) List(name string) ([]interface{}, bool) {
	val, ok := b[name]
	if !ok {
		return nil, false
	}
	list, ok := val.([]interface{})
	return list, ok
}

// ListNames returns the top-level names bound to list values, sorted
// for deterministic permutation order.
func (b Bindings) ListNames() []string {
	var names []string
	for name, val := range b {
		if _, ok := val.([]interface{}); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Merge returns a fresh Bindings with overlay entries layered on top
// of the receiver. Neither input is mutated.
func (b Bindings) Merge(overlay Bindings) Bindings {
	merged := make(Bindings, len(b)+len(overlay))
	for k, v := range b {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// Stringify converts a binding value to its textual form for
// substitution into rendered output.
func Stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		// YAML and JSON decoding hand numbers over as float64.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asMap normalizes the map shapes that YAML, JSON, and callers produce.
func asMap(val interface{}) (map[string]interface{}, bool) {
	switch m := val.(type) {
	case map[string]interface{}:
		return m, true
	case Bindings:
		return m, true
	default:
		return nil, false
	}
}

