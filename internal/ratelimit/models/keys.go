package models

import (
	"strconv"
	"strings"
)

// SanitizeKeySegment escapes the key delimiter so a segment cannot spill into
// its neighbour.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// IdentityKey is the store key for one chat identity's throttle state.
func IdentityKey(identity int64) string {
	return strconv.FormatInt(identity, 10)
}
