// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-contract/internal/parsing"
	"github.com/jonathan/resume-contract/internal/types"
)

// Default values applied by MergeWithDefaults.
const (
	DefaultPort     = 8080
	MaxAttemptsCap  = 5
	DefaultDBEnvKey = "DATABASE_URL"
)

// Config represents settings that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Model
	APIKey      string `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Gemini API key
	Model       string `json:"model,omitempty" yaml:"model,omitempty"`               // Overrides the parse model
	MaxAttempts int    `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"` // Model calls per parse, repair included
	ParserName  string `json:"parser_name,omitempty" yaml:"parser_name,omitempty"`   // Recorded in source.parser

	// Input
	MaxResumeChars int  `json:"max_resume_chars,omitempty" yaml:"max_resume_chars,omitempty"` // Caps résumé text before parsing
	UseBrowser     bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`           // Render profile pages with a headless browser

	// Storage and transport
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`                 // HTTP port for serve

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Debug logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		MaxAttempts:    parsing.DefaultMaxAttempts,
		ParserName:     parsing.ParserName,
		MaxResumeChars: types.MaxResumeTextLength,
		Port:           DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Zero values are
// accepted and mean "use the default".
func (c *Config) Validate() error {
	if c.MaxAttempts < 0 || c.MaxAttempts > MaxAttemptsCap {
		return fmt.Errorf("config error: 'max_attempts' must be between 1 and %d", MaxAttemptsCap)
	}
	if c.MaxResumeChars < 0 || c.MaxResumeChars > types.MaxResumeTextLength {
		return fmt.Errorf("config error: 'max_resume_chars' must be between 1 and %d", types.MaxResumeTextLength)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	return nil
}

// ApplyEnv fills empty fields from the environment: GEMINI_API_KEY,
// GEMINI_PARSE_MODEL, DATABASE_URL and PORT.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.APIKey == "" {
		c.APIKey = getenv("GEMINI_API_KEY")
	}
	if c.Model == "" {
		c.Model = getenv("GEMINI_PARSE_MODEL")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = getenv(DefaultDBEnvKey)
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(getenv("PORT")); err == nil {
			c.Port = port
		}
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ParserName == "" {
		result.ParserName = defaults.ParserName
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.MaxAttempts == 0 {
		result.MaxAttempts = defaults.MaxAttempts
	}
	if result.MaxResumeChars == 0 {
		result.MaxResumeChars = defaults.MaxResumeChars
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
