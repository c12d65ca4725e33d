// Package gateway performs the single blocking Gemini call of the pipeline.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"codeask/internal/config"
	"codeask/internal/types"
)

// ErrClientInitialization reports a Gemini client that could not be constructed.
var ErrClientInitialization = errors.New("failed to initialize Gemini client")

// ErrGenerationFailed reports a request that the model endpoint rejected or dropped.
var ErrGenerationFailed = errors.New("Gemini request failed")

// ErrDeadlineExceeded reports a request that ran past the configured timeout.
var ErrDeadlineExceeded = errors.New("Gemini request deadline exceeded")

// ErrEmptyResponse reports a response without any usable candidates.
var ErrEmptyResponse = errors.New("Gemini returned no response candidates")

const (
	errorMissingCredentialFormat = "cannot query Gemini: %w"
	errorClientFormat            = "%v: %w"
	errorGenerateFormat          = "querying model %s: %v: %w"
	errorDeadlineFormat          = "querying model %s: %w"
)

// generateFunction issues one content-generation request.
type generateFunction func(ctx context.Context, promptText string) (*genai.GenerateContentResponse, error)

// Gateway wraps the official genai client. It issues exactly one call per
// Query with no retries; failure classification is the caller's interface.
type Gateway struct {
	modelName string
	timeout   time.Duration
	generate  generateFunction
}

// NewGateway validates the credential, constructs the genai client, and binds
// it to the configured model. A missing credential fails before any client
// exists, so no network activity can occur.
func NewGateway(ctx context.Context, apiKey string, modelName string, timeout time.Duration) (*Gateway, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf(errorMissingCredentialFormat, config.ErrAPIKeyMissing)
	}

	client, clientError := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if clientError != nil {
		return nil, fmt.Errorf(errorClientFormat, clientError, ErrClientInitialization)
	}

	constructed := &Gateway{
		modelName: modelName,
		timeout:   timeout,
	}
	constructed.generate = func(generateContext context.Context, promptText string) (*genai.GenerateContentResponse, error) {
		return client.Models.GenerateContent(
			generateContext,
			constructed.modelName,
			[]*genai.Content{{Parts: []*genai.Part{{Text: promptText}}}},
			nil,
		)
	}
	return constructed, nil
}

// ModelName returns the model this gateway queries.
func (gateway *Gateway) ModelName() string {
	return gateway.modelName
}

// Query sends the prompt and returns the raw payload untouched; extraction is
// the next stage's job. A positive timeout bounds the call, and running past
// it is the one distinguished failure mode besides a plain request error and
// an empty candidate list.
func (gateway *Gateway) Query(ctx context.Context, promptText string) (types.RawResponse, error) {
	queryContext := ctx
	if gateway.timeout > 0 {
		var cancelQuery context.CancelFunc
		queryContext, cancelQuery = context.WithTimeout(ctx, gateway.timeout)
		defer cancelQuery()
	}

	response, generateError := gateway.generate(queryContext, promptText)
	if generateError != nil {
		if errors.Is(generateError, context.DeadlineExceeded) || errors.Is(queryContext.Err(), context.DeadlineExceeded) {
			return types.RawResponse{}, fmt.Errorf(errorDeadlineFormat, gateway.modelName, ErrDeadlineExceeded)
		}
		return types.RawResponse{}, fmt.Errorf(errorGenerateFormat, gateway.modelName, generateError, ErrGenerationFailed)
	}

	if response == nil || len(response.Candidates) == 0 {
		return types.RawResponse{}, ErrEmptyResponse
	}
	firstCandidate := response.Candidates[0]
	if firstCandidate.Content == nil || len(firstCandidate.Content.Parts) == 0 {
		return types.RawResponse{}, ErrEmptyResponse
	}

	var joinedText strings.Builder
	for _, part := range firstCandidate.Content.Parts {
		if part == nil {
			continue
		}
		joinedText.WriteString(part.Text)
	}
	if joinedText.Len() > 0 {
		return types.NewTextResponse(joinedText.String()), nil
	}

	// Candidates that reduce to no text at all keep their generic shape so
	// the extractor can apply its structured fallbacks.
	payload := map[string]any{}
	if contentBytes, marshalError := json.Marshal(firstCandidate.Content); marshalError == nil {
		_ = json.Unmarshal(contentBytes, &payload)
	}
	return types.NewStructuredResponse(payload), nil
}
