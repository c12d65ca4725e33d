// Package config resolves application settings from the environment,
// optional configuration files, and the codebase exclusion list.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeask/internal/utils"
)

const commentPrefix = "#"

// LoadExclusionFragments reads the exclusion list file at the codebase root and
// returns one fragment per non-empty line. Lines starting with "#" are
// comments. A missing file yields no fragments and no error.
//
// #nosec G304
func LoadExclusionFragments(codebaseRootPath string) ([]string, error) {
	exclusionFilePath := filepath.Join(codebaseRootPath, utils.IgnoreFileName)
	fileHandle, openFileError := os.Open(exclusionFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s from %s: %w", utils.IgnoreFileName, codebaseRootPath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", exclusionFilePath, closeError)
		}
	}()

	var fragments []string
	lineScanner := bufio.NewScanner(fileHandle)
	for lineScanner.Scan() {
		trimmedLine := strings.TrimSpace(lineScanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		fragments = append(fragments, trimmedLine)
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading %s: %w", exclusionFilePath, scanError)
	}
	return utils.DeduplicatePatterns(fragments), nil
}
