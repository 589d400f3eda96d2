// Package config handles configuration loading and defaults.
package config

// Default values.
const (
	DefaultDataFile  = "~/.taskli/tasks.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for taskli.
type Config struct {
	// DataFile is the location of the task file.
	DataFile string `toml:"data_file"`
	// SchemaFile, when set, enables JSON Schema validation of the task
	// file on load.
	SchemaFile string `toml:"schema_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
