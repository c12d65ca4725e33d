// Package scanner walks a codebase root and collects UTF-8 text files for prompting.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codeask/internal/types"
	"codeask/internal/utils"
)

const (
	// WarningAccessPathFormat reports an entry that could not be visited.
	WarningAccessPathFormat = "Warning: error accessing path %s: %v\n"
	// WarningFileReadFormat reports a file that could not be read.
	WarningFileReadFormat = "Warning: could not read file %s: %v\n"
	// WarningFileDecodeFormat reports a file skipped because it is not UTF-8 text.
	WarningFileDecodeFormat = "Warning: skipping non-text file %s\n"

	errorRootResolveFormat      = "resolve codebase path '%s': %v: %w"
	errorRootMissingFormat      = "codebase path '%s' does not exist: %w"
	errorRootStatFormat         = "stat codebase path '%s': %v: %w"
	errorRootNotDirectoryFormat = "codebase path '%s' is not a directory: %w"
)

// ErrInvalidRoot reports a codebase root that is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid codebase path")

// ErrNoFilesCollected reports a scan that produced nothing to analyze.
var ErrNoFilesCollected = errors.New("no files found to analyze")

// Options configures a single collection pass over a validated root.
type Options struct {
	Root          string
	Exclusions    *ExclusionSet
	Extensions    ExtensionFilter
	WarningWriter io.Writer
}

// ResolveRoot converts codebasePath to an absolute, cleaned directory path.
// A blank, missing, or non-directory path yields ErrInvalidRoot.
func ResolveRoot(codebasePath string) (string, error) {
	if strings.TrimSpace(codebasePath) == "" {
		return "", fmt.Errorf(errorRootMissingFormat, codebasePath, ErrInvalidRoot)
	}
	absolutePath, absolutePathError := filepath.Abs(codebasePath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorRootResolveFormat, codebasePath, absolutePathError, ErrInvalidRoot)
	}
	cleanedPath := filepath.Clean(absolutePath)
	pathInformation, statError := os.Stat(cleanedPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorRootMissingFormat, codebasePath, ErrInvalidRoot)
		}
		return "", fmt.Errorf(errorRootStatFormat, codebasePath, statError, ErrInvalidRoot)
	}
	if !pathInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, codebasePath, ErrInvalidRoot)
	}
	return cleanedPath, nil
}

// CollectFiles walks the root in lexical order and returns every file that
// survives exclusion and extension filtering and decodes as UTF-8 text.
// Unreadable or non-text entries are skipped with a warning; warnings never
// abort the walk. An empty result is not an error here; callers decide
// whether nothing-to-analyze is fatal.
func CollectFiles(options Options) ([]types.SourceFile, error) {
	warningWriter := options.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}
	rootPath := filepath.Clean(options.Root)

	var collectedFiles []types.SourceFile
	walkError := filepath.WalkDir(rootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			fmt.Fprintf(warningWriter, WarningAccessPathFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if directoryEntry.IsDir() {
			if options.Exclusions.Excludes(walkedPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !options.Extensions.Allows(walkedPath) {
			return nil
		}

		fileBytes, fileReadError := os.ReadFile(walkedPath)
		if fileReadError != nil {
			fmt.Fprintf(warningWriter, WarningFileReadFormat, walkedPath, fileReadError)
			return nil
		}
		if utils.IsBinary(fileBytes) {
			fmt.Fprintf(warningWriter, WarningFileDecodeFormat, walkedPath)
			return nil
		}

		collectedFiles = append(collectedFiles, types.SourceFile{
			AbsolutePath: walkedPath,
			RelativePath: utils.RelativePathOrSelf(walkedPath, rootPath),
			Content:      string(fileBytes),
		})
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}
	return collectedFiles, nil
}
