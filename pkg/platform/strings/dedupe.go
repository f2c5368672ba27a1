// Package strings holds helpers for the free-form token lists admins type in.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every value, drops blanks and keeps the first
// occurrence of each remaining value. Order is preserved.
//
//	DedupeAndTrim([]string{"  A1 ", "B2", "A1", "", "  "})
//	// []string{"A1", "B2"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitTokens splits command arguments on any whitespace and dedupes them.
// Tokens are case-sensitive.
//
//	SplitTokens("A1  B2\nA1")
//	// []string{"A1", "B2"}
func SplitTokens(args string) []string {
	return DedupeAndTrim(strings.Fields(args))
}
