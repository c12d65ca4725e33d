// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codeask/internal/config"
	"codeask/internal/utils"
)

const (
	questionFlagName      = "question"
	questionFlagShorthand = "q"
	editorFlagName        = "editor"
	editorFlagShorthand   = "e"
	pathFlagName          = "path"
	excludeFlagName       = "exclude"
	excludeFlagShorthand  = "x"
	extensionsFlagName    = "extensions"
	styleFlagName         = "style"
	modelFlagName         = "model"
	modelFlagShorthand    = "m"
	timeoutFlagName       = "timeout"
	tokensFlagName        = "tokens"
	copyFlagName          = "copy"
	copyFlagShorthand     = "c"
	versionFlagName       = "version"
	versionTemplate       = "codeask version: %s\n"

	rootUse              = "codeask"
	rootShortDescription = "ask a Gemini model questions about a codebase"
	rootLongDescription  = `codeask packages a source tree into a single prompt, sends it to a Gemini
model together with your question, and prints the extracted answer.
Provide the question inline with --question or compose it with --editor.
The codebase root, exclusions, and model come from flags, configuration
files, and the environment.`
	// rootUsageExample demonstrates root command usage.
	rootUsageExample = `  # Ask about the current directory
  codeask -q "Where is the request retry logic implemented?"

  # Compose the question in an editor and restrict the scan to Python files
  codeask -e --extensions .py --style fenced

  # Ask about another tree while skipping generated code
  codeask --path ./service -x vendor -x gen -q "What does the worker pool do?"`

	questionFlagDescription   = "literal question to ask about the codebase"
	editorFlagDescription     = "compose the question in an external editor"
	pathFlagDescription       = "codebase root to scan (overrides CODEBASE_PATH)"
	excludeFlagDescription    = "path to exclude from the scan, relative to the root (repeatable)"
	extensionsFlagDescription = "only include files with these extensions (default: all files)"
	styleFlagDescription      = "prompt style: raw or fenced"
	modelFlagDescription      = "Gemini model to query"
	timeoutFlagDescription    = "timeout for the model request"
	tokensFlagDescription     = "report prompt size and token estimate before querying"
	copyFlagDescription       = "copy the answer to the clipboard"
	versionFlagDescription    = "display application version"

	initUse                   = "init"
	initShortDescription      = "write a default configuration file"
	initLongDescription       = `Write a default ` + utils.ConfigFileName + ` configuration file.
Use --global to place the file under the home directory instead of the
working directory.`
	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write the global configuration file"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initSuccessFormat         = "Wrote configuration to %s\n"
)

// askOptions stores flag values for the root command.
type askOptions struct {
	questionText       string
	useEditor          bool
	codebasePath       string
	exclusionFragments []string
	extensions         []string
	styleName          string
	modelName          string
	requestTimeout     time.Duration
	tokenReport        bool
	copyAnswer         bool
}

// Execute runs the codeask application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options askOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runAsk(command, options)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	registerAskFlags(rootCommand, &options)
	rootCommand.MarkFlagsOneRequired(questionFlagName, editorFlagName)
	rootCommand.MarkFlagsMutuallyExclusive(questionFlagName, editorFlagName)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// registerAskFlags registers the question pipeline flags on the command.
func registerAskFlags(command *cobra.Command, options *askOptions) {
	flagSet := command.Flags()
	flagSet.StringVarP(&options.questionText, questionFlagName, questionFlagShorthand, "", questionFlagDescription)
	registerBooleanFlag(flagSet, &options.useEditor, editorFlagName, editorFlagShorthand, false, editorFlagDescription)
	flagSet.StringVar(&options.codebasePath, pathFlagName, "", pathFlagDescription)
	flagSet.StringArrayVarP(&options.exclusionFragments, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	flagSet.StringSliceVar(&options.extensions, extensionsFlagName, nil, extensionsFlagDescription)
	flagSet.StringVar(&options.styleName, styleFlagName, "", styleFlagDescription)
	flagSet.StringVarP(&options.modelName, modelFlagName, modelFlagShorthand, "", modelFlagDescription)
	flagSet.DurationVar(&options.requestTimeout, timeoutFlagName, 0, timeoutFlagDescription)
	registerBooleanFlag(flagSet, &options.tokenReport, tokensFlagName, "", false, tokensFlagDescription)
	registerBooleanFlag(flagSet, &options.copyAnswer, copyFlagName, copyFlagShorthand, false, copyFlagDescription)
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:          initUse,
		Short:        initShortDescription,
		Long:         initLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: forceOverwrite})
			if initializeError != nil {
				return initializeError
			}
			fmt.Fprintf(command.OutOrStdout(), initSuccessFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, initGlobalFlagName, false, initGlobalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}

// applyFlagOverrides layers explicit flag values over the resolved settings.
func applyFlagOverrides(command *cobra.Command, settings *config.Settings, options askOptions) {
	flagSet := command.Flags()
	if options.codebasePath != "" {
		settings.CodebasePath = options.codebasePath
	}
	if len(options.exclusionFragments) > 0 {
		merged := append(append([]string{}, settings.ExcludedPaths...), options.exclusionFragments...)
		settings.ExcludedPaths = utils.DeduplicatePatterns(merged)
	}
	if flagSet.Changed(extensionsFlagName) {
		settings.Extensions = options.extensions
	}
	if options.styleName != "" {
		settings.Style = options.styleName
	}
	if options.modelName != "" {
		settings.Model = options.modelName
	}
	if flagSet.Changed(timeoutFlagName) {
		settings.Timeout = options.requestTimeout
	}
	if flagSet.Changed(tokensFlagName) {
		settings.TokenReport = options.tokenReport
	}
	if flagSet.Changed(copyFlagName) {
		settings.CopyToClipboard = options.copyAnswer
	}
}
