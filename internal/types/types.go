// Package types defines every cross-package data structure used by the codeask CLI.
package types

const (
	// StyleRaw concatenates file contents without any framing.
	StyleRaw = "raw"
	// StyleFenced wraps each file in a language-tagged fenced code block.
	StyleFenced = "fenced"

	// ResponseKindText marks a payload that arrived as plain text.
	ResponseKindText = "text"
	// ResponseKindStructured marks a payload whose shape is a generic key-value mapping.
	ResponseKindStructured = "structured"
)

// SourceFile is one scanned file destined for the prompt.
type SourceFile struct {
	AbsolutePath string
	RelativePath string
	Content      string
}

// RawResponse is the untouched payload returned by the model gateway.
// Exactly one arm is populated, selected by Kind.
type RawResponse struct {
	Kind    string
	Text    string
	Payload map[string]any
}

// NewTextResponse wraps a plain-text payload.
func NewTextResponse(text string) RawResponse {
	return RawResponse{Kind: ResponseKindText, Text: text}
}

// NewStructuredResponse wraps a payload of unknown shape.
func NewStructuredResponse(payload map[string]any) RawResponse {
	return RawResponse{Kind: ResponseKindStructured, Payload: payload}
}
