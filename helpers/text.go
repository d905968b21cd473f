package helpers

import (
	"strings"
)

// Clean collapses internal whitespace runs into single spaces and trims
// leading and trailing whitespace. Every string lifted from the page goes
// through here exactly once before it is placed into a record.
func Clean(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// CleanAll applies Clean to every element of the slice
func CleanAll(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		cleaned = append(cleaned, Clean(v))
	}
	return cleaned
}

// Dedupe removes duplicate strings while preserving first-seen order
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// EqualFold reports whether two strings match case-insensitively after cleaning
func EqualFold(a, b string) bool {
	return strings.EqualFold(Clean(a), Clean(b))
}
