package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"codeask/internal/types"
	"codeask/internal/utils"
)

// Environment variable names consumed by the tool.
const (
	APIKeyEnvironmentVariable        = "GEMINI_API_KEY"
	CodebasePathEnvironmentVariable  = "CODEBASE_PATH"
	ExcludedPathsEnvironmentVariable = "EXCLUDED_PATHS"
	ModelEnvironmentVariable         = "GEMINI_MODEL"
	EditorEnvironmentVariable        = "EDITOR"
)

const (
	// DefaultModelName is the model queried when no override is configured.
	DefaultModelName = "gemini-1.5-flash-8b"
	// DefaultRequestTimeout bounds the single gateway call.
	DefaultRequestTimeout = 120 * time.Second
	// DefaultCodebasePath is used when CODEBASE_PATH is unset.
	DefaultCodebasePath = "."

	apiKeyMissingGuidance = "set it in the environment or a .env file"
)

// ErrAPIKeyMissing reports an absent or empty GEMINI_API_KEY.
var ErrAPIKeyMissing = errors.New(APIKeyEnvironmentVariable + " environment variable not set")

// Settings is the fully resolved configuration threaded through the pipeline.
// Components never consult the environment themselves.
type Settings struct {
	APIKey          string
	CodebasePath    string
	ExcludedPaths   []string
	Extensions      []string
	Model           string
	Style           string
	Editor          string
	Timeout         time.Duration
	TokenReport     bool
	CopyToClipboard bool
}

// LoadSettings resolves settings by layering configuration file values under
// environment variables. A .env file in the working directory is loaded first,
// the way the original workflow expects; a missing .env is not an error.
// Flag overrides are applied by the caller on top of the returned value.
func LoadSettings(fileConfiguration ApplicationConfiguration) (Settings, error) {
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv(APIKeyEnvironmentVariable))
	if apiKey == "" {
		return Settings{}, fmt.Errorf("%w; %s", ErrAPIKeyMissing, apiKeyMissingGuidance)
	}

	codebasePath := strings.TrimSpace(os.Getenv(CodebasePathEnvironmentVariable))
	if codebasePath == "" {
		codebasePath = DefaultCodebasePath
	}

	excludedPaths := utils.SplitCommaSeparated(os.Getenv(ExcludedPathsEnvironmentVariable))
	excludedPaths = utils.DeduplicatePatterns(append(append([]string{}, fileConfiguration.Exclude...), excludedPaths...))

	model := strings.TrimSpace(os.Getenv(ModelEnvironmentVariable))
	if model == "" {
		model = fileConfiguration.Model
	}
	if model == "" {
		model = DefaultModelName
	}

	style := fileConfiguration.Style
	if style == "" {
		style = types.StyleRaw
	}

	editor := strings.TrimSpace(os.Getenv(EditorEnvironmentVariable))
	if editor == "" {
		editor = fileConfiguration.Editor
	}

	timeout := DefaultRequestTimeout
	if fileConfiguration.TimeoutSeconds != nil {
		timeout = time.Duration(*fileConfiguration.TimeoutSeconds) * time.Second
	}

	tokenReport := false
	if fileConfiguration.Tokens.Enabled != nil {
		tokenReport = *fileConfiguration.Tokens.Enabled
	}

	copyToClipboard := false
	if fileConfiguration.Clipboard.Enabled != nil {
		copyToClipboard = *fileConfiguration.Clipboard.Enabled
	}

	return Settings{
		APIKey:          apiKey,
		CodebasePath:    codebasePath,
		ExcludedPaths:   excludedPaths,
		Extensions:      append([]string{}, fileConfiguration.Extensions...),
		Model:           model,
		Style:           style,
		Editor:          editor,
		Timeout:         timeout,
		TokenReport:     tokenReport,
		CopyToClipboard: copyToClipboard,
	}, nil
}
