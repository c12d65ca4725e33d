// Package extractor turns a raw model response into the final plain-text answer.
package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"codeask/internal/types"
)

// answerFragmentPattern matches the protobuf-style text fragments some
// response serializations embed. Non-greedy so the first fragment wins;
// (?s) lets the capture span escaped multi-line content.
var answerFragmentPattern = regexp.MustCompile(`(?s)parts\s*\{\s*text:\s*"(.*?)"\s*\}`)

// ErrNoAnalysisResult reports a payload that carries no extractable answer.
var ErrNoAnalysisResult = errors.New("no analysis result available")

// ErrMalformedEscape reports an escape sequence that could not be decoded.
var ErrMalformedEscape = errors.New("malformed escape sequence in response")

const (
	partsPayloadKey = "parts"
	textPayloadKey  = "text"
)

// ExtractAnswer produces the answer text from a raw gateway response.
// The payload is first normalized to text; if the text contains
// parts-fragments the first captured group becomes the answer body,
// otherwise the whole text does. The body is then unescaped
// unconditionally and trimmed.
func ExtractAnswer(response types.RawResponse) (string, error) {
	normalizedText, normalizeError := normalizeToText(response)
	if normalizeError != nil {
		return "", normalizeError
	}
	answerBody := normalizedText
	if matches := answerFragmentPattern.FindStringSubmatch(normalizedText); matches != nil {
		answerBody = matches[1]
	}
	decodedBody, decodeError := decodeEscapes(answerBody)
	if decodeError != nil {
		return "", decodeError
	}
	return strings.TrimSpace(decodedBody), nil
}

// normalizeToText reduces either response arm to a working string. Structured
// payloads surface their parts' text fields when present and fall back to a
// stringification of the whole mapping otherwise.
func normalizeToText(response types.RawResponse) (string, error) {
	switch response.Kind {
	case types.ResponseKindText:
		return response.Text, nil
	case types.ResponseKindStructured:
		if response.Payload == nil {
			return "", ErrNoAnalysisResult
		}
		if partsValue, hasParts := response.Payload[partsPayloadKey]; hasParts {
			if partsText, extracted := stringifyParts(partsValue); extracted {
				return partsText, nil
			}
		}
		return fmt.Sprintf("%v", response.Payload), nil
	default:
		return "", ErrNoAnalysisResult
	}
}

// stringifyParts pulls text fields out of a parts value of unknown shape.
// List entries are concatenated without a separator, matching how the SDK
// joins multi-part candidates.
func stringifyParts(partsValue any) (string, bool) {
	switch typedParts := partsValue.(type) {
	case []any:
		var joinedText strings.Builder
		textFound := false
		for _, partValue := range typedParts {
			partMapping, isMapping := partValue.(map[string]any)
			if !isMapping {
				continue
			}
			textValue, hasText := partMapping[textPayloadKey]
			if !hasText {
				continue
			}
			joinedText.WriteString(stringifyValue(textValue))
			textFound = true
		}
		return joinedText.String(), textFound
	case map[string]any:
		textValue, hasText := typedParts[textPayloadKey]
		if !hasText {
			return "", false
		}
		return stringifyValue(textValue), true
	default:
		return "", false
	}
}

func stringifyValue(value any) string {
	if textValue, isString := value.(string); isString {
		return textValue
	}
	return fmt.Sprintf("%v", value)
}
