// Package question supplies the user's question from a flag or an editor session.
package question

import (
	"errors"
	"strings"
)

// ErrNoQuestionProvided reports a question that is empty after trimming.
var ErrNoQuestionProvided = errors.New("no query provided")

// Provider yields the question text to ask about the codebase.
type Provider interface {
	Provide() (string, error)
}

// LiteralProvider returns a question passed directly on the command line.
type LiteralProvider struct {
	QuestionText string
}

// Provide returns the literal question unmodified. Validation happens at the
// pipeline boundary so every provider shares it.
func (provider LiteralProvider) Provide() (string, error) {
	return provider.QuestionText, nil
}

var _ Provider = LiteralProvider{}

// Validate trims the supplied question and rejects empty input.
func Validate(questionText string) (string, error) {
	trimmedQuestion := strings.TrimSpace(questionText)
	if trimmedQuestion == "" {
		return "", ErrNoQuestionProvided
	}
	return trimmedQuestion, nil
}
