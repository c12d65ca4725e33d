package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"codeask/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults supplied by configuration files.
// Optional booleans and integers are pointer-typed so an absent key is
// distinguishable from an explicit false or zero.
type ApplicationConfiguration struct {
	Model          string                 `mapstructure:"model"`
	Style          string                 `mapstructure:"style"`
	TimeoutSeconds *int                   `mapstructure:"timeout_seconds"`
	Extensions     []string               `mapstructure:"extensions"`
	Exclude        []string               `mapstructure:"exclude"`
	Editor         string                 `mapstructure:"editor"`
	Tokens         TokenConfiguration     `mapstructure:"tokens"`
	Clipboard      ClipboardConfiguration `mapstructure:"clipboard"`
}

// TokenConfiguration controls the prompt token estimate notice.
type TokenConfiguration struct {
	Enabled *bool `mapstructure:"enabled"`
}

// ClipboardConfiguration controls copying the answer to the system clipboard.
type ClipboardConfiguration struct {
	Enabled *bool `mapstructure:"enabled"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The global file lives under the user's home directory and the local file in
// the working directory; local values override global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Exclude = utils.DeduplicatePatterns(merged.Exclude)
	merged.Extensions = utils.DeduplicatePatterns(merged.Extensions)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var configuration ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.Style != "" {
		result.Style = override.Style
	}
	if override.TimeoutSeconds != nil {
		result.TimeoutSeconds = cloneInt(override.TimeoutSeconds)
	}
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string{}, utils.DeduplicatePatterns(override.Extensions)...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.Editor != "" {
		result.Editor = override.Editor
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Clipboard = result.Clipboard.merge(override.Clipboard)
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	return result
}

func (configuration ClipboardConfiguration) merge(override ClipboardConfiguration) ClipboardConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
