package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// toFloat coerces a Value to float64. Non-numeric values coerce to 0.
// Numeric-comparison predicates check for a missing field before calling
// it, so a missing field evaluates to false; a present but non-numeric
// value compares as 0.
func toFloat(v Value) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// asFloat is like toFloat but reports whether v was actually numeric, used
// by predicates that must distinguish "compares equal as numbers" from
// "falls through to string equality" (§4.5, the `==`/`!=` row).
func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringify(v Value) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ConfigFloat reads key from config as a float64, coercing strings and
// falling back to def if missing or unconvertible. Shared by node
// constructors (sim/nodes) and the network loader (sim/network) so every
// config format (INI's all-string values, YAML/JSON's typed values) is
// read the same way.
func ConfigFloat(config map[string]Value, key string, def float64) float64 {
	v, ok := config[key]
	if !ok {
		return def
	}
	f, isNum := asFloat(v)
	if !isNum {
		return def
	}
	return f
}

// ConfigInt64 reads key from config as an int64, truncating a float value.
func ConfigInt64(config map[string]Value, key string, def int64) int64 {
	return int64(ConfigFloat(config, key, float64(def)))
}

// ConfigString reads key from config as a string, falling back to def if
// missing.
func ConfigString(config map[string]Value, key, def string) string {
	v, ok := config[key]
	if !ok {
		return def
	}
	return stringify(v)
}

// ConfigBool reads key from config as a bool. Accepts a native bool or the
// strings "true"/"false" (case-insensitive), since INI always yields
// strings.
func ConfigBool(config map[string]Value, key string, def bool) bool {
	v, ok := config[key]
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(b) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return def
}
