package question

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const (
	temporaryFilePattern  = "codeask-question-*.txt"
	editingPromptMessage  = "Press Enter when you have finished editing the query..."
	fallbackEditorCommand = "vi"

	errorCreateTemporaryFormat = "create temporary question file: %w"
	errorCloseTemporaryFormat  = "close temporary question file %s: %w"
	errorLaunchEditorFormat    = "launch editor %s: %w"
	errorReadQuestionFormat    = "read question from %s: %w"
	warningRemoveFailedFormat  = "Warning: failed to remove %s: %v\n"
)

// CommandLauncher starts external editing programs. The seam exists so tests
// can drive the editor flow without spawning processes.
type CommandLauncher interface {
	// LaunchBlocking runs the program attached to the terminal and waits for it to exit.
	LaunchBlocking(program string, filePath string) error
	// LaunchDetached starts the program without waiting for it.
	LaunchDetached(program string, filePath string) error
}

// systemLauncher implements CommandLauncher with os/exec.
type systemLauncher struct{}

func (systemLauncher) LaunchBlocking(program string, filePath string) error {
	command := exec.Command(program, filePath)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	return command.Run()
}

func (systemLauncher) LaunchDetached(program string, filePath string) error {
	return exec.Command(program, filePath).Start()
}

var _ CommandLauncher = systemLauncher{}

// EditorProvider collects the question through a temporary file handed to an
// external editing program. Selection order: the configured editor command,
// else the platform opener followed by a confirmation prompt, else a plain
// terminal editor. The temporary file is removed on every exit path.
type EditorProvider struct {
	EditorCommand      string
	Launcher           CommandLauncher
	PromptInput        io.Reader
	PromptOutput       io.Writer
	TemporaryDirectory string
}

// Provide creates the temporary file, hands it to the editing program, blocks
// until editing is done, and reads the result back.
func (provider EditorProvider) Provide() (string, error) {
	launcher := provider.Launcher
	if launcher == nil {
		launcher = systemLauncher{}
	}

	temporaryFile, createError := os.CreateTemp(provider.TemporaryDirectory, temporaryFilePattern)
	if createError != nil {
		return "", fmt.Errorf(errorCreateTemporaryFormat, createError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if removeError := os.Remove(temporaryPath); removeError != nil && !os.IsNotExist(removeError) {
			fmt.Fprintf(provider.promptOutput(), warningRemoveFailedFormat, temporaryPath, removeError)
		}
	}()
	if closeError := temporaryFile.Close(); closeError != nil {
		return "", fmt.Errorf(errorCloseTemporaryFormat, temporaryPath, closeError)
	}

	if launchError := provider.launchEditor(launcher, temporaryPath); launchError != nil {
		return "", launchError
	}

	questionBytes, readError := os.ReadFile(temporaryPath)
	if readError != nil {
		return "", fmt.Errorf(errorReadQuestionFormat, temporaryPath, readError)
	}
	return string(questionBytes), nil
}

var _ Provider = EditorProvider{}

func (provider EditorProvider) launchEditor(launcher CommandLauncher, temporaryPath string) error {
	editorCommand := strings.TrimSpace(provider.EditorCommand)
	if editorCommand != "" {
		if launchError := launcher.LaunchBlocking(editorCommand, temporaryPath); launchError != nil {
			return fmt.Errorf(errorLaunchEditorFormat, editorCommand, launchError)
		}
		return nil
	}

	if openerCommand := platformOpenerCommand(runtime.GOOS); openerCommand != "" {
		if startError := launcher.LaunchDetached(openerCommand, temporaryPath); startError == nil {
			provider.awaitEditingConfirmation()
			return nil
		}
	}

	if launchError := launcher.LaunchBlocking(fallbackEditorCommand, temporaryPath); launchError != nil {
		return fmt.Errorf(errorLaunchEditorFormat, fallbackEditorCommand, launchError)
	}
	return nil
}

// platformOpenerCommand returns the platform's default document opener, or
// the empty string on platforms without a known one.
func platformOpenerCommand(operatingSystem string) string {
	switch operatingSystem {
	case "darwin":
		return "open"
	case "windows":
		return "notepad"
	case "linux":
		return "xdg-open"
	default:
		return ""
	}
}

// awaitEditingConfirmation blocks until the user signals the detached editor
// session is finished.
func (provider EditorProvider) awaitEditingConfirmation() {
	fmt.Fprintln(provider.promptOutput(), editingPromptMessage)
	lineReader := bufio.NewReader(provider.promptInput())
	_, _ = lineReader.ReadString('\n')
}

func (provider EditorProvider) promptOutput() io.Writer {
	if provider.PromptOutput != nil {
		return provider.PromptOutput
	}
	return os.Stderr
}

func (provider EditorProvider) promptInput() io.Reader {
	if provider.PromptInput != nil {
		return provider.PromptInput
	}
	return os.Stdin
}
