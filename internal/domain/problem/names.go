package problem

import "strings"

// SplitNames splits comma-separated submitter text into trimmed, non-empty
// names.
func SplitNames(text string) []string {
	var names []string
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// UniqueNames de-duplicates names preserving first-seen order.
func UniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
