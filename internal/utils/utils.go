// Package utils contains general helper functions used across the codeask tool.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate entries from a slice while preserving order.
// The first occurrence of each unique entry is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// SplitCommaSeparated splits a comma-separated listing into trimmed, non-empty entries.
func SplitCommaSeparated(listing string) []string {
	if strings.TrimSpace(listing) == EmptyString {
		return nil
	}
	rawEntries := strings.Split(listing, ",")
	entries := make([]string, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		trimmedEntry := strings.TrimSpace(rawEntry)
		if trimmedEntry != EmptyString {
			entries = append(entries, trimmedEntry)
		}
	}
	return entries
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
