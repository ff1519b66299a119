package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters spec files by name pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters spec files by name pattern using wildcard matching,
// e.g. "*redstone*" or "piston_*.json". A pattern without wildcards falls
// back to a substring match on the file name.
func (f *Filter) FilterByName(specs []string, pattern string) []string {
	if pattern == "" {
		return specs
	}

	var filtered []string
	for _, spec := range specs {
		name := filepath.Base(spec)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, spec)
			continue
		}

		if strings.ContainsAny(pattern, "*?") {
			if wildcardParts(pattern, name) {
				filtered = append(filtered, spec)
			}
			continue
		}

		if strings.Contains(name, pattern) {
			filtered = append(filtered, spec)
		}
	}
	return filtered
}

// wildcardParts reports whether every literal segment of a wildcard pattern
// occurs in name.
func wildcardParts(pattern, name string) bool {
	parts := strings.FieldsFunc(pattern, func(r rune) bool { return r == '*' || r == '?' })
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if !strings.Contains(name, part) {
			return false
		}
	}
	return true
}
