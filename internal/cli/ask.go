package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeask/internal/config"
	"codeask/internal/extractor"
	"codeask/internal/gateway"
	"codeask/internal/prompt"
	"codeask/internal/question"
	"codeask/internal/scanner"
	"codeask/internal/services/clipboard"
	"codeask/internal/tokenizer"
	"codeask/internal/types"
	"codeask/internal/utils"
)

const (
	connectedMessageFormat  = "Connected to Gemini model '%s'."
	promptEstimateFormat    = "Prompt: %s, about %d tokens (%s encoding)"
	warningClipboardFormat  = "Warning: failed to copy answer to clipboard: %v\n"
	warningTokenCountFormat = "Warning: failed to estimate prompt tokens: %v\n"
	errorEmptyScanFormat    = "%w under %s"
)

// queryClient is the gateway surface the answer pipeline depends on.
type queryClient interface {
	Query(ctx context.Context, promptText string) (types.RawResponse, error)
}

var _ queryClient = (*gateway.Gateway)(nil)

// runAsk resolves settings, obtains the question, scans the codebase, queries
// the model, and prints the extracted answer.
func runAsk(command *cobra.Command, options askOptions) error {
	loggerInstance, loggerCreationError := utils.NewApplicationLogger()
	if loggerCreationError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerCreationError)
	}
	defer func() { _ = loggerInstance.Sync() }()

	fileConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{})
	if configurationError != nil {
		return configurationError
	}
	settings, settingsError := config.LoadSettings(fileConfiguration)
	if settingsError != nil {
		return settingsError
	}
	applyFlagOverrides(command, &settings, options)

	questionText, questionError := obtainQuestion(settings, options)
	if questionError != nil {
		return questionError
	}

	promptText, promptError := collectPrompt(settings, questionText, os.Stderr)
	if promptError != nil {
		return promptError
	}

	if settings.TokenReport {
		reportPromptEstimate(loggerInstance, settings.Model, promptText)
	}

	requestContext := command.Context()
	modelGateway, gatewayError := gateway.NewGateway(requestContext, settings.APIKey, settings.Model, settings.Timeout)
	if gatewayError != nil {
		return gatewayError
	}
	loggerInstance.Info(fmt.Sprintf(connectedMessageFormat, modelGateway.ModelName()))

	answerText, answerError := executeQuery(requestContext, modelGateway, promptText)
	if answerError != nil {
		return answerError
	}

	fmt.Fprintln(command.OutOrStdout(), answerText)

	if settings.CopyToClipboard {
		if copyError := clipboard.NewService().Copy(answerText); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardFormat, copyError)
		}
	}
	return nil
}

// obtainQuestion selects the question source and validates the result.
func obtainQuestion(settings config.Settings, options askOptions) (string, error) {
	var questionProvider question.Provider
	if options.useEditor {
		questionProvider = question.EditorProvider{EditorCommand: settings.Editor}
	} else {
		questionProvider = question.LiteralProvider{QuestionText: options.questionText}
	}
	providedText, provideError := questionProvider.Provide()
	if provideError != nil {
		return "", provideError
	}
	return question.Validate(providedText)
}

// collectPrompt scans the codebase and assembles the full prompt text.
func collectPrompt(settings config.Settings, questionText string, warningWriter io.Writer) (string, error) {
	style, styleError := prompt.ParseStyle(settings.Style)
	if styleError != nil {
		return "", styleError
	}
	codebaseRoot, rootError := scanner.ResolveRoot(settings.CodebasePath)
	if rootError != nil {
		return "", rootError
	}
	ignoreFragments, ignoreError := config.LoadExclusionFragments(codebaseRoot)
	if ignoreError != nil {
		return "", ignoreError
	}
	exclusionFragments := utils.DeduplicatePatterns(append(append([]string{}, settings.ExcludedPaths...), ignoreFragments...))
	sourceFiles, collectError := scanner.CollectFiles(scanner.Options{
		Root:          codebaseRoot,
		Exclusions:    scanner.NewExclusionSet(codebaseRoot, exclusionFragments),
		Extensions:    scanner.NewExtensionFilter(settings.Extensions),
		WarningWriter: warningWriter,
	})
	if collectError != nil {
		return "", collectError
	}
	if len(sourceFiles) == 0 {
		return "", fmt.Errorf(errorEmptyScanFormat, scanner.ErrNoFilesCollected, codebaseRoot)
	}
	return prompt.BuildPrompt(sourceFiles, questionText, style), nil
}

// executeQuery sends the prompt and extracts the final answer text.
func executeQuery(requestContext context.Context, client queryClient, promptText string) (string, error) {
	rawResponse, queryError := client.Query(requestContext, promptText)
	if queryError != nil {
		return "", queryError
	}
	return extractor.ExtractAnswer(rawResponse)
}

// reportPromptEstimate logs the prompt size and an estimated token count.
func reportPromptEstimate(loggerInstance *zap.Logger, modelName string, promptText string) {
	promptCounter, encodingName, counterError := tokenizer.NewCounter(modelName)
	if counterError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, counterError)
		return
	}
	tokenCount, countError := promptCounter.CountString(promptText)
	if countError != nil {
		fmt.Fprintf(os.Stderr, warningTokenCountFormat, countError)
		return
	}
	loggerInstance.Info(fmt.Sprintf(promptEstimateFormat, utils.FormatFileSize(int64(len(promptText))), tokenCount, encodingName))
}
