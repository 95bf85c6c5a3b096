// Package config holds value coercion shared by the config store adapters.
// Hand-edited TOML may quote numbers and booleans; both forms read the same.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// AsString formats v as a string. Scalars are formatted; other types are not.
func AsString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Duration:
		return t.String(), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}

// AsInt converts v to an int. Floats must be whole and strings must parse.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		if t > math.MaxInt || t < math.MinInt {
			return 0, false
		}
		return int(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsBool converts v to a bool, accepting the forms strconv.ParseBool does.
func AsBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}
