// Package shape projects semi-structured API records onto field allowlists and
// computes derived display fields.
package shape

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Extract builds, for every record, a map holding exactly fields. Absent fields
// map to nil. Input that is not a sequence of maps yields an empty slice.
func Extract(records any, fields []string) []map[string]any {
	var items []map[string]any

	switch v := records.(type) {
	case []map[string]any:
		items = v
	case []any:
		items = make([]map[string]any, 0, len(v))
		for _, raw := range v {
			m, ok := raw.(map[string]any)
			if !ok {
				return []map[string]any{}
			}
			items = append(items, m)
		}
	default:
		return []map[string]any{}
	}

	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if item == nil {
			return []map[string]any{}
		}
		extracted := make(map[string]any, len(fields))
		for _, field := range fields {
			extracted[field] = item[field]
		}
		result = append(result, extracted)
	}
	return result
}

// Truncate keeps at most n rows.
func Truncate(rows []map[string]any, n int) []map[string]any {
	if n < 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// FormatDuration renders seconds as m:ss using floor division, so negative
// values keep a non-negative seconds part (-5 renders as -1:55).
func FormatDuration(seconds int64) string {
	minutes, rest := seconds/60, seconds%60
	if rest < 0 {
		minutes--
		rest += 60
	}
	return fmt.Sprintf("%d:%02d", minutes, rest)
}

// Int coerces a decoded JSON number to an integer. Fractional numbers and
// strings are rejected.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// String renders a decoded JSON scalar for display.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	case json.Number:
		return s.String(), true
	case int, int64, int32:
		return fmt.Sprintf("%d", s), true
	default:
		return "", false
	}
}
