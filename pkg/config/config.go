// Package config loads the optional user configuration file. Every field
// has a compiled-in default; a missing or unparseable file never stops the
// filter, because the pager has already committed to calling us.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/prettycat/pkg/logging"
	"github.com/arthur-debert/prettycat/pkg/paths"
)

// Config holds user-tunable rendering settings
type Config struct {
	// Style is the chroma style used by the generic highlighter
	Style string `toml:"style"`
	// DocStyle overrides the style for long-form documentation lexers
	DocStyle string `toml:"doc_style"`
	// Color controls colour output: "auto", "always" or "never"
	Color string `toml:"color"`
	// LexerOverrides maps filename glob patterns to lexer names, merged on
	// top of the built-in override table
	LexerOverrides map[string]string `toml:"lexer_overrides"`
}

// Default returns the compiled-in configuration
func Default() *Config {
	return &Config{
		Style:          "monokai",
		DocStyle:       "pygments",
		Color:          "auto",
		LexerOverrides: map[string]string{},
	}
}

var globalConfig *Config

// Initialize sets up the global configuration
func Initialize(cfg *Config) {
	if cfg == nil {
		cfg = Default()
	}
	globalConfig = cfg
}

// Get returns the current configuration
func Get() *Config {
	if globalConfig == nil {
		Initialize(Load(paths.ConfigFile()))
	}
	return globalConfig
}

// Load reads the configuration file at path, falling back to defaults on
// any error.
func Load(path string) *Config {
	logger := logging.GetLogger("config")
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("cannot read config file, using defaults")
		}
		return cfg
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("cannot parse config file, using defaults")
		return Default()
	}
	if cfg.LexerOverrides == nil {
		cfg.LexerOverrides = map[string]string{}
	}

	logger.Debug().Str("path", path).Msg("loaded config file")
	return cfg
}
