package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"codeask/internal/config"
	"codeask/internal/extractor"
	"codeask/internal/scanner"
	"codeask/internal/types"
)

// fakeQueryClient implements queryClient without any network access.
type fakeQueryClient struct {
	response types.RawResponse
	err      error
	prompts  []string
}

func (client *fakeQueryClient) Query(_ context.Context, promptText string) (types.RawResponse, error) {
	client.prompts = append(client.prompts, promptText)
	if client.err != nil {
		return types.RawResponse{}, client.err
	}
	return client.response, nil
}

// newSilencedRootCommand builds the root command with discarded output streams.
func newSilencedRootCommand() *cobra.Command {
	rootCommand := createRootCommand()
	rootCommand.SetOut(&bytes.Buffer{})
	rootCommand.SetErr(&bytes.Buffer{})
	return rootCommand
}

func TestRootCommandRequiresQuestionSource(t *testing.T) {
	rootCommand := newSilencedRootCommand()
	rootCommand.SetArgs([]string{})

	executionError := rootCommand.Execute()
	if executionError == nil {
		t.Fatalf("expected an error when neither question source is given")
	}
	errorText := executionError.Error()
	if !strings.Contains(errorText, questionFlagName) || !strings.Contains(errorText, editorFlagName) {
		t.Fatalf("expected the error to name both question sources, got %q", errorText)
	}
}

func TestRootCommandRejectsBothQuestionSources(t *testing.T) {
	rootCommand := newSilencedRootCommand()
	rootCommand.SetArgs([]string{"--" + questionFlagName, "what?", "--" + editorFlagName})

	executionError := rootCommand.Execute()
	if executionError == nil {
		t.Fatalf("expected an error when both question sources are given")
	}
	errorText := executionError.Error()
	if !strings.Contains(errorText, questionFlagName) || !strings.Contains(errorText, editorFlagName) {
		t.Fatalf("expected the error to name both question sources, got %q", errorText)
	}
}

func TestRootCommandRegistersInitSubcommand(t *testing.T) {
	rootCommand := createRootCommand()
	for _, subcommand := range rootCommand.Commands() {
		if subcommand.Use == initUse {
			return
		}
	}
	t.Fatalf("expected init subcommand to be registered")
}

func TestApplyFlagOverrides(t *testing.T) {
	command := &cobra.Command{Use: "override-test"}
	var options askOptions
	registerAskFlags(command, &options)
	parseError := command.Flags().Parse([]string{
		"--" + pathFlagName, "./svc",
		"-" + excludeFlagShorthand, "vendor",
		"--" + extensionsFlagName, ".py,.js",
		"--" + styleFlagName, "fenced",
		"-" + modelFlagShorthand, "gemini-pro",
		"--" + timeoutFlagName, "30s",
		"--" + tokensFlagName,
		"--" + copyFlagName,
	})
	if parseError != nil {
		t.Fatalf("parse flags: %v", parseError)
	}

	settings := config.Settings{
		CodebasePath:  ".",
		ExcludedPaths: []string{"dist"},
		Model:         "configured-model",
		Style:         types.StyleRaw,
		Timeout:       config.DefaultRequestTimeout,
	}
	applyFlagOverrides(command, &settings, options)

	if settings.CodebasePath != "./svc" {
		t.Fatalf("expected path override, got %q", settings.CodebasePath)
	}
	expectedExclusions := []string{"dist", "vendor"}
	if !reflect.DeepEqual(settings.ExcludedPaths, expectedExclusions) {
		t.Fatalf("expected exclusions %v, got %v", expectedExclusions, settings.ExcludedPaths)
	}
	expectedExtensions := []string{".py", ".js"}
	if !reflect.DeepEqual(settings.Extensions, expectedExtensions) {
		t.Fatalf("expected extensions %v, got %v", expectedExtensions, settings.Extensions)
	}
	if settings.Style != types.StyleFenced {
		t.Fatalf("expected style override, got %q", settings.Style)
	}
	if settings.Model != "gemini-pro" {
		t.Fatalf("expected model override, got %q", settings.Model)
	}
	if settings.Timeout != 30*time.Second {
		t.Fatalf("expected timeout override, got %v", settings.Timeout)
	}
	if !settings.TokenReport || !settings.CopyToClipboard {
		t.Fatalf("expected boolean toggles enabled")
	}
}

func TestApplyFlagOverridesKeepsSettingsWithoutFlags(t *testing.T) {
	command := &cobra.Command{Use: "override-test"}
	var options askOptions
	registerAskFlags(command, &options)
	if parseError := command.Flags().Parse(nil); parseError != nil {
		t.Fatalf("parse flags: %v", parseError)
	}

	settings := config.Settings{
		CodebasePath:  "/srv/codebase",
		ExcludedPaths: []string{"dist"},
		Model:         "configured-model",
		Style:         types.StyleFenced,
		Timeout:       45 * time.Second,
		TokenReport:   true,
	}
	original := settings
	applyFlagOverrides(command, &settings, options)
	if !reflect.DeepEqual(settings, original) {
		t.Fatalf("expected settings untouched without flags, got %+v", settings)
	}
}

func TestCollectPromptIncludesFilesAndQuestion(t *testing.T) {
	rootPath := t.TempDir()
	if writeError := os.WriteFile(filepath.Join(rootPath, "keep.py"), []byte("def keep(): pass\n"), 0o600); writeError != nil {
		t.Fatalf("write keep.py: %v", writeError)
	}
	if mkdirError := os.MkdirAll(filepath.Join(rootPath, "vendor"), 0o755); mkdirError != nil {
		t.Fatalf("create vendor directory: %v", mkdirError)
	}
	if writeError := os.WriteFile(filepath.Join(rootPath, "vendor", "skip.py"), []byte("secret = True\n"), 0o600); writeError != nil {
		t.Fatalf("write skip.py: %v", writeError)
	}

	settings := config.Settings{
		CodebasePath:  rootPath,
		ExcludedPaths: []string{"vendor"},
		Style:         types.StyleRaw,
	}
	promptText, promptError := collectPrompt(settings, "What does keep do?", &bytes.Buffer{})
	if promptError != nil {
		t.Fatalf("collectPrompt error: %v", promptError)
	}
	if !strings.Contains(promptText, "def keep(): pass") {
		t.Fatalf("expected scanned content in prompt, got %q", promptText)
	}
	if strings.Contains(promptText, "secret = True") {
		t.Fatalf("excluded content leaked into prompt: %q", promptText)
	}
	if !strings.HasSuffix(promptText, "\n\nWhat does keep do?") {
		t.Fatalf("expected the question after a blank line, got %q", promptText)
	}
}

func TestCollectPromptEmptyScan(t *testing.T) {
	rootPath := t.TempDir()
	if writeError := os.WriteFile(filepath.Join(rootPath, "main.py"), []byte("print(1)\n"), 0o600); writeError != nil {
		t.Fatalf("write main.py: %v", writeError)
	}

	settings := config.Settings{
		CodebasePath: rootPath,
		Extensions:   []string{".go"},
		Style:        types.StyleRaw,
	}
	_, promptError := collectPrompt(settings, "anything?", &bytes.Buffer{})
	if !errors.Is(promptError, scanner.ErrNoFilesCollected) {
		t.Fatalf("expected ErrNoFilesCollected, got %v", promptError)
	}
}

func TestCollectPromptRejectsUnknownStyle(t *testing.T) {
	settings := config.Settings{CodebasePath: t.TempDir(), Style: "yaml"}
	_, promptError := collectPrompt(settings, "anything?", &bytes.Buffer{})
	if promptError == nil {
		t.Fatalf("expected unknown style to fail")
	}
}

func TestExecuteQueryExtractsAnswer(t *testing.T) {
	client := &fakeQueryClient{response: types.NewTextResponse(`parts { text: "All good\n" }`)}
	answerText, queryError := executeQuery(context.Background(), client, "prompt body")
	if queryError != nil {
		t.Fatalf("executeQuery error: %v", queryError)
	}
	if answerText != "All good" {
		t.Fatalf("expected decoded and trimmed answer, got %q", answerText)
	}
	if len(client.prompts) != 1 || client.prompts[0] != "prompt body" {
		t.Fatalf("expected exactly one query with the prompt, got %v", client.prompts)
	}
}

func TestExecuteQueryPropagatesFailures(t *testing.T) {
	requestFailure := errors.New("request failed")
	client := &fakeQueryClient{err: requestFailure}
	_, queryError := executeQuery(context.Background(), client, "prompt body")
	if !errors.Is(queryError, requestFailure) {
		t.Fatalf("expected request failure to propagate, got %v", queryError)
	}

	emptyClient := &fakeQueryClient{response: types.NewStructuredResponse(nil)}
	_, extractError := executeQuery(context.Background(), emptyClient, "prompt body")
	if !errors.Is(extractError, extractor.ErrNoAnalysisResult) {
		t.Fatalf("expected ErrNoAnalysisResult, got %v", extractError)
	}
}
