package utils

import "strings"

const ellipsis = "..."

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

// Preview returns at most limit runes of s followed by an ellipsis.
// Unlike TruncateForLog the ellipsis is always present so a reader can tell
// the text is an excerpt, and surrounding whitespace is kept.
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ellipsis
	}
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + ellipsis
}
