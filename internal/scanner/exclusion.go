package scanner

import (
	"path/filepath"
	"strings"

	"codeask/internal/utils"
)

// ExclusionSet holds exclusion entries resolved to absolute, cleaned paths.
// A directory is excluded when an entry equals it or is one of its ancestors.
type ExclusionSet struct {
	resolvedPaths []string
}

// NewExclusionSet resolves each fragment against the codebase root. Relative
// fragments are joined to the root; absolute fragments are kept as provided.
// Blank fragments are dropped.
func NewExclusionSet(rootPath string, fragments []string) *ExclusionSet {
	resolvedPaths := make([]string, 0, len(fragments))
	for _, fragment := range utils.DeduplicatePatterns(fragments) {
		trimmedFragment := strings.TrimSpace(fragment)
		if trimmedFragment == "" {
			continue
		}
		candidatePath := trimmedFragment
		if !filepath.IsAbs(candidatePath) {
			candidatePath = filepath.Join(rootPath, candidatePath)
		}
		resolvedPaths = append(resolvedPaths, filepath.Clean(candidatePath))
	}
	return &ExclusionSet{resolvedPaths: resolvedPaths}
}

// Excludes reports whether the absolute directory path equals an exclusion
// entry or descends from one. Comparison always uses resolved paths; raw
// fragments never participate, so "foo" cannot shadow "foobar".
func (exclusionSet *ExclusionSet) Excludes(absoluteDirectoryPath string) bool {
	if exclusionSet == nil || len(exclusionSet.resolvedPaths) == 0 {
		return false
	}
	cleanPath := filepath.Clean(absoluteDirectoryPath)
	for _, resolvedPath := range exclusionSet.resolvedPaths {
		if cleanPath == resolvedPath {
			return true
		}
		if strings.HasPrefix(cleanPath, resolvedPath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// ExtensionFilter restricts collection to a set of file extensions.
// The zero value accepts every file.
type ExtensionFilter struct {
	allowedExtensions map[string]struct{}
}

// NewExtensionFilter normalizes the provided extensions to lower case with a
// leading dot. An empty or all-blank listing yields the accept-all filter.
func NewExtensionFilter(extensions []string) ExtensionFilter {
	if len(extensions) == 0 {
		return ExtensionFilter{}
	}
	allowedExtensions := make(map[string]struct{}, len(extensions))
	for _, extension := range extensions {
		normalizedExtension := strings.ToLower(strings.TrimSpace(extension))
		if normalizedExtension == "" {
			continue
		}
		if !strings.HasPrefix(normalizedExtension, ".") {
			normalizedExtension = "." + normalizedExtension
		}
		allowedExtensions[normalizedExtension] = struct{}{}
	}
	if len(allowedExtensions) == 0 {
		return ExtensionFilter{}
	}
	return ExtensionFilter{allowedExtensions: allowedExtensions}
}

// Allows reports whether the file at filePath passes the filter.
func (extensionFilter ExtensionFilter) Allows(filePath string) bool {
	if extensionFilter.allowedExtensions == nil {
		return true
	}
	_, allowed := extensionFilter.allowedExtensions[strings.ToLower(filepath.Ext(filePath))]
	return allowed
}
