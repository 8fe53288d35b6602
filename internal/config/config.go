package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrison/pkgusage/internal/display"
	"github.com/harrison/pkgusage/internal/logger"
	"github.com/harrison/pkgusage/internal/models"
	"github.com/harrison/pkgusage/internal/walker"
	"gopkg.in/yaml.v3"
)

// Config represents pkgusage options. Values come from defaults, then an
// explicitly requested YAML file, then command-line flags.
type Config struct {
	// ExcludeDirs lists directory base names never descended into
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Extensions lists the file extensions treated as source files
	Extensions []string `yaml:"extensions"`

	// Jobs is the number of files matched concurrently
	Jobs int `yaml:"jobs"`

	// OnError is the unreadable-path policy (abort, skip)
	OnError string `yaml:"on_error"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Format selects the report rendering (text, json, yaml)
	Format string `yaml:"format"`

	// Output is an optional file the rendered report is also written to
	Output string `yaml:"output"`
}

// DefaultConfig returns a Config matching the tool's historical behavior:
// skip node_modules and build, scan .ts and .js, one file at a time, abort on errors.
func DefaultConfig() *Config {
	return &Config{
		ExcludeDirs: append([]string(nil), walker.DefaultExcludeDirs...),
		Extensions:  append([]string(nil), walker.DefaultExtensions...),
		Jobs:        1,
		OnError:     string(models.PolicyAbort),
		LogLevel:    "warn",
		Format:      string(display.FormatText),
	}
}

// LoadConfig loads configuration from the specified file path on top of the defaults.
// The file was asked for explicitly, so a missing file is an error.
// Keys absent from the file keep their default; a present list key replaces
// the default list, even when empty.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Presence detection for list keys, where empty is meaningful.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, exists := rawMap["exclude_dirs"]; exists {
		cfg.ExcludeDirs = nonNil(fileCfg.ExcludeDirs)
	}
	if _, exists := rawMap["extensions"]; exists {
		cfg.Extensions = nonNil(fileCfg.Extensions)
	}
	if fileCfg.Jobs != 0 {
		cfg.Jobs = fileCfg.Jobs
	}
	if fileCfg.OnError != "" {
		cfg.OnError = fileCfg.OnError
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.Output != "" {
		cfg.Output = fileCfg.Output
	}

	return cfg, nil
}

// FlagOverrides carries command-line values. A nil field means the flag was not set.
type FlagOverrides struct {
	ExcludeDirs *[]string
	Extensions  *[]string
	Jobs        *int
	OnError     *string
	LogLevel    *string
	Format      *string
	Output      *string
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(flags FlagOverrides) {
	if flags.ExcludeDirs != nil {
		c.ExcludeDirs = nonNil(*flags.ExcludeDirs)
	}
	if flags.Extensions != nil {
		c.Extensions = nonNil(*flags.Extensions)
	}
	if flags.Jobs != nil {
		c.Jobs = *flags.Jobs
	}
	if flags.OnError != nil {
		c.OnError = *flags.OnError
	}
	if flags.LogLevel != nil {
		c.LogLevel = *flags.LogLevel
	}
	if flags.Format != nil {
		c.Format = *flags.Format
	}
	if flags.Output != nil {
		c.Output = *flags.Output
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1, got %d", c.Jobs)
	}

	if _, err := models.ParseErrorPolicy(c.OnError); err != nil {
		return err
	}

	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}

	if _, err := display.ParseFormat(c.Format); err != nil {
		return err
	}

	for _, dir := range c.ExcludeDirs {
		if dir == "" {
			return fmt.Errorf("exclude_dirs entries cannot be empty")
		}
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("exclude_dirs entry %q must be a directory name, not a path", dir)
		}
	}

	for _, ext := range c.Extensions {
		if strings.TrimPrefix(ext, ".") == "" {
			return fmt.Errorf("extensions entries cannot be empty")
		}
	}

	return nil
}

// Policy returns the parsed error policy. Call Validate first.
func (c *Config) Policy() models.ErrorPolicy {
	policy, err := models.ParseErrorPolicy(c.OnError)
	if err != nil {
		return models.PolicyAbort
	}
	return policy
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
