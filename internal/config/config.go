// Package config loads the settings of the formulae command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultFile     = "formulae.yaml"
	DefaultIndent   = 2
	DefaultOutput   = OutputText
	DefaultLogLevel = "warn"

	EnvPrefix = "FORMULAE_"
)

const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

type Config struct {
	// Color enables ANSI colors in dump output.
	Color bool `koanf:"color"`
	// Indent is the number of spaces per level in dump output.
	Indent int `koanf:"indent"`
	// Strict runs the checker on every parsed formula.
	Strict   bool   `koanf:"strict"`
	Output   string `koanf:"output"`
	LogLevel string `koanf:"log_level"`

	// File is the configuration file that was read, if any.
	File string `koanf:"-"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Indent:   DefaultIndent,
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
	}
}

// findConfigFile returns the file to read: the explicit one if given,
// formulae.yaml from the working directory when it exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

// Load builds the configuration from, by increasing precedence, the
// defaults, the configuration file and the FORMULAE_* environment variables.
func Load(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"color":     false,
		"indent":    DefaultIndent,
		"strict":    false,
		"output":    DefaultOutput,
		"log_level": DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// FORMULAE_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative (got %d)", c.Indent)
	}
	if !slices.Contains([]string{OutputText, OutputYAML, OutputJSON}, c.Output) {
		return fmt.Errorf("unknown output format %q: expected text, yaml or json", c.Output)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level matching LogLevel, warn if it is not valid.
func (c *Config) Level() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// IndentString returns the indentation unit used by dump.
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}

func parseLevel(str string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(str)); err != nil {
		return lvl, fmt.Errorf("invalid log_level %q: %w", str, err)
	}
	return lvl, nil
}
