package parse

import (
	"encoding/json"
	"math"
	"strconv"
)

// The decoder accepts values produced by encoding/json (with or without
// UseNumber) and by YAML decoders, which report integers with various Go
// types. Strings are never read as integers.

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		i, err := strconv.Atoi(string(x))
		if err != nil {
			return 0, false
		}
		return i, true
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.Abs(x) > 1<<53 {
			return 0, false
		}
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case int32:
		return int(x), true
	case uint64:
		if x > math.MaxInt {
			return 0, false
		}
		return int(x), true
	case uint32:
		return int(x), true
	default:
		return 0, false
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func asObject(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, kv := range x {
			switch kk := k.(type) {
			case string:
				res[kk] = kv
			default:
				i, ok := asInt(kk)
				if !ok {
					return nil, false
				}
				res[strconv.Itoa(i)] = kv
			}
		}
		return res, true
	default:
		return nil, false
	}
}

// present reports whether key is in m with a non-null value.
func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// indexKey parses a child or table key. Only the canonical decimal form of
// a non-negative integer is an index; any other key reports ok false.
func indexKey(k string) (int, bool) {
	i, err := strconv.Atoi(k)
	if err != nil || i < 0 || strconv.Itoa(i) != k {
		return 0, false
	}
	return i, true
}
