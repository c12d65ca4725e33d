// Package prompt assembles scanned files and a question into one prompt string.
package prompt

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeask/internal/types"
)

const (
	fileSeparator     = "\n"
	questionSeparator = "\n\n"
	fenceMarker       = "```"

	errorUnknownStyleFormat = "unknown prompt style '%s'; supported styles: %s, %s"
)

// fenceLanguageByExtension maps a file extension to the language tag used on
// fenced blocks. Extensions outside this table get a bare fence.
var fenceLanguageByExtension = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".cpp":  "cpp",
	".h":    "cpp",
	".java": "java",
	".php":  "php",
}

// ParseStyle validates a style name and returns its canonical form.
func ParseStyle(styleName string) (string, error) {
	normalizedStyle := strings.ToLower(strings.TrimSpace(styleName))
	switch normalizedStyle {
	case types.StyleRaw, types.StyleFenced:
		return normalizedStyle, nil
	default:
		return "", fmt.Errorf(errorUnknownStyleFormat, styleName, types.StyleRaw, types.StyleFenced)
	}
}

// FenceLanguage returns the language tag for a file path, or the empty string
// when the extension is not in the fixed table.
func FenceLanguage(filePath string) string {
	return fenceLanguageByExtension[strings.ToLower(filepath.Ext(filePath))]
}

// BuildPrompt concatenates the files according to style and appends the
// question after a blank line. The function performs no I/O and produces
// identical output for identical input.
func BuildPrompt(files []types.SourceFile, question string, style string) string {
	renderedFiles := make([]string, 0, len(files))
	for _, file := range files {
		if style == types.StyleFenced {
			renderedFiles = append(renderedFiles, fenceMarker+FenceLanguage(file.AbsolutePath)+"\n"+file.Content+"\n"+fenceMarker)
			continue
		}
		renderedFiles = append(renderedFiles, file.Content)
	}
	return strings.Join(renderedFiles, fileSeparator) + questionSeparator + question
}
