// Package config persists user defaults for subtitle generation in a
// key=value file and resolves where output files go.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-subtitle/internal/subtitle"
)

// Keys accepted by "subtitle config".
const (
	KeyOutputDir   = "output-dir"
	KeyGranularity = "granularity"
)

// Environment variables read when the file leaves a key unset.
const (
	EnvOutputDir   = "SUBTITLE_OUTPUT_DIR"
	EnvGranularity = "SUBTITLE_GRANULARITY"
)

// Credentials and endpoint. API_KEY is the older name and is read second.
const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvLegacyAPIKey = "API_KEY"
	EnvBaseURL      = "OPENAI_BASE_URL"
)

// Config is the effective set of user defaults.
type Config struct {
	OutputDir   string
	Granularity string
}

// settings ties each key to its env fallback and Config field.
var settings = []struct {
	key   string
	env   string
	field func(*Config) *string
}{
	{KeyOutputDir, EnvOutputDir, func(c *Config) *string { return &c.OutputDir }},
	{KeyGranularity, EnvGranularity, func(c *Config) *string { return &c.Granularity }},
}

// Keys lists the supported keys in the order "config list" prints them.
func Keys() []string {
	keys := make([]string, len(settings))
	for i, s := range settings {
		keys[i] = s.key
	}
	return keys
}

// Validate rejects unknown keys and values the generate command could not use.
// output-dir is only checked for emptiness here.
func Validate(key, value string) error {
	switch key {
	case KeyOutputDir:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, key)
		}
	case KeyGranularity:
		if _, err := subtitle.ParseGranularity(value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	default:
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return nil
}

// APIKey reads OPENAI_API_KEY, then API_KEY, ignoring surrounding blanks.
func APIKey(getenv func(string) string) string {
	for _, name := range []string{EnvAPIKey, EnvLegacyAPIKey} {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Load merges the config file with the SUBTITLE_* variables. A file value
// wins over its variable. A missing file is an empty config.
func Load() (Config, error) {
	var cfg Config

	values, err := List()
	if err != nil {
		return cfg, err
	}
	for _, s := range settings {
		v := values[s.key]
		if v == "" {
			v = os.Getenv(s.env)
		}
		*s.field(&cfg) = v
	}
	return cfg, nil
}
