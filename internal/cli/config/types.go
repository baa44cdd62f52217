// Package config provides configuration management for the tablestakes CLI.
//
// Values are layered with koanf: built-in defaults, then an optional
// tablestakes.yaml file, then TABLESTAKES_* environment variables, then
// flags that were set explicitly on the command line.
package config

// Config holds all CLI configuration options.
type Config struct {
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
	MaxRows      int    `koanf:"max_rows"`
	Style        string `koanf:"style"`
	HistoryFile  string `koanf:"history_file"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "info"
	DefaultStyle       = "light"
	DefaultHistoryFile = "~/.tablestakes_history"
	EnvPrefix          = "TABLESTAKES_"
)

// ConfigFileNames lists the file names searched for, in order.
var ConfigFileNames = []string{"tablestakes.yaml", "tablestakes.yml"}

// Accepted values for the enumerated keys.
var (
	OutputModes = []string{"auto", "text", "markdown", "json", "yaml", "tsv"}
	Styles      = []string{"light", "rounded", "double", "ascii"}
	LogLevels   = []string{"debug", "info", "warn", "error"}
)

// Default returns a Config holding the built-in defaults.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		Style:        DefaultStyle,
		HistoryFile:  expandHome(DefaultHistoryFile),
	}
}
