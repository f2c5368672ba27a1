// Package attrs reads values back out of slog-style key/value argument lists.
package attrs

import "strconv"

// ExtractString returns the value stored under key in a [k1, v1, k2, v2, ...]
// slice. Integer values are formatted in base 10; anything else yields "".
func ExtractString(attrs []any, key string) string {
	for i := 0; i+1 < len(attrs); i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		switch v := attrs[i+1].(type) {
		case string:
			return v
		case int64:
			return strconv.FormatInt(v, 10)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}
