package deps

import "strings"

// ShouldSkip reports whether name is excluded by filter. An empty filter
// excludes nothing; otherwise any name containing filter is excluded.
func ShouldSkip(name, filter string) bool {
	return filter != "" && strings.Contains(name, filter)
}

// WithinDepth reports whether a package at depth may be expanded under
// maxDepth.
func WithinDepth(depth, maxDepth int) bool {
	return depth <= maxDepth
}
