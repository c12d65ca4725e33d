package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "codeask failed"

// ConfigFileName is the name of the local application configuration file.
const ConfigFileName = ".codeask.yaml"

// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
const GlobalConfigDirectoryName = ".codeask"

// IgnoreFileName is the name of the optional exclusion list file in the codebase root.
const IgnoreFileName = ".codeaskignore"
