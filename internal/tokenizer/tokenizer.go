// Package tokenizer estimates prompt token counts before the gateway call.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// defaultEncodingName is the encoding used for models tiktoken does not know,
// which includes every Gemini model. Counts against it are estimates.
const defaultEncodingName = "cl100k_base"

// NewCounter returns a Counter for the requested model together with the name
// that was actually resolved. Unknown models fall back to the default encoding.
func NewCounter(modelName string) (Counter, string, error) {
	normalizedModel := strings.ToLower(strings.TrimSpace(modelName))
	if normalizedModel != "" {
		if encoding, encodingError := tiktoken.EncodingForModel(normalizedModel); encodingError == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: normalizedModel}, normalizedModel, nil
		}
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}
