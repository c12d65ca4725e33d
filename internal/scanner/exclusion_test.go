package scanner_test

import (
	"path/filepath"
	"testing"

	"codeask/internal/scanner"
)

// vendorDirectoryName is the directory excluded in most exclusion tests.
const vendorDirectoryName = "vendor"

// shadowDirectoryName shares a prefix with vendorDirectoryName but must stay included.
const shadowDirectoryName = "vendored"

func TestExclusionSetExcludes(t *testing.T) {
	rootPath := filepath.Join(string(filepath.Separator), "workspace", "project")
	exclusionSet := scanner.NewExclusionSet(rootPath, []string{
		vendorDirectoryName,
		filepath.Join("nested", "cache"),
		"  ",
	})

	testCases := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "excluded directory itself", path: filepath.Join(rootPath, vendorDirectoryName), expected: true},
		{name: "descendant of excluded directory", path: filepath.Join(rootPath, vendorDirectoryName, "pkg", "mod"), expected: true},
		{name: "sibling sharing the prefix", path: filepath.Join(rootPath, shadowDirectoryName), expected: false},
		{name: "nested exclusion entry", path: filepath.Join(rootPath, "nested", "cache"), expected: true},
		{name: "parent of an exclusion entry", path: filepath.Join(rootPath, "nested"), expected: false},
		{name: "unrelated directory", path: filepath.Join(rootPath, "cmd"), expected: false},
		{name: "codebase root", path: rootPath, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := exclusionSet.Excludes(testCase.path); result != testCase.expected {
				t.Fatalf("expected %v for %s, got %v", testCase.expected, testCase.path, result)
			}
		})
	}
}

func TestExclusionSetResolvesRelativeFragments(t *testing.T) {
	rootPath := filepath.Join(string(filepath.Separator), "workspace", "project")
	exclusionSet := scanner.NewExclusionSet(rootPath, []string{filepath.Join("sub", "..", "build")})
	if !exclusionSet.Excludes(filepath.Join(rootPath, "build")) {
		t.Fatalf("expected cleaned fragment to exclude build directory")
	}
}

func TestExclusionSetKeepsAbsoluteFragments(t *testing.T) {
	rootPath := filepath.Join(string(filepath.Separator), "workspace", "project")
	absoluteFragment := filepath.Join(string(filepath.Separator), "srv", "shared-cache")
	exclusionSet := scanner.NewExclusionSet(rootPath, []string{absoluteFragment})
	if !exclusionSet.Excludes(absoluteFragment) {
		t.Fatalf("expected absolute fragment to be honored")
	}
	if exclusionSet.Excludes(filepath.Join(rootPath, "srv", "shared-cache")) {
		t.Fatalf("absolute fragment must not be rejoined to the root")
	}
}

func TestExclusionSetEmpty(t *testing.T) {
	exclusionSet := scanner.NewExclusionSet(filepath.Join(string(filepath.Separator), "workspace"), nil)
	if exclusionSet.Excludes(filepath.Join(string(filepath.Separator), "workspace", "anything")) {
		t.Fatalf("empty exclusion set must not exclude anything")
	}
}

func TestExtensionFilterAllows(t *testing.T) {
	testCases := []struct {
		name       string
		extensions []string
		filePath   string
		expected   bool
	}{
		{name: "no filter accepts all", extensions: nil, filePath: "notes.txt", expected: true},
		{name: "listed extension", extensions: []string{".py"}, filePath: "main.py", expected: true},
		{name: "unlisted extension", extensions: []string{".py"}, filePath: "main.js", expected: false},
		{name: "missing dot normalized", extensions: []string{"py"}, filePath: "main.py", expected: true},
		{name: "case insensitive listing", extensions: []string{".PY"}, filePath: "main.py", expected: true},
		{name: "case insensitive path", extensions: []string{".py"}, filePath: "MAIN.PY", expected: true},
		{name: "blank listing accepts all", extensions: []string{"  ", ""}, filePath: "main.go", expected: true},
		{name: "file without extension", extensions: []string{".py"}, filePath: "Makefile", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			extensionFilter := scanner.NewExtensionFilter(testCase.extensions)
			if result := extensionFilter.Allows(testCase.filePath); result != testCase.expected {
				t.Fatalf("expected %v for %s with %v, got %v", testCase.expected, testCase.filePath, testCase.extensions, result)
			}
		})
	}
}
