// Package config handles project configuration for syllabib.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in syllabib.yml next to the
// schedule sources. Every field is an optional default; command-line flags
// always win.
type Config struct {
	Bib      string `yaml:"bib,omitempty"`      // bibliography path
	Out      string `yaml:"out,omitempty"`      // build output path
	Timezone string `yaml:"timezone,omitempty"` // IANA timezone for the start date
	Start    string `yaml:"start,omitempty"`    // week 1 anchor date, YYYY-MM-DD
}

const (
	// ConfigFile is the project config file name.
	ConfigFile = "syllabib.yml"

	// DefaultTimezone is used when neither flag, env, nor config set one.
	DefaultTimezone = "America/Chicago"
)

// Load reads the config file at path. A missing file is not an error: it
// yields an empty config so every setting falls back to flags and env.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overlays SYLLABIB_* environment variables onto the config.
// Typically these come from a .env file loaded at command startup.
func (c *Config) ApplyEnv() {
	overlay := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	overlay(&c.Bib, "SYLLABIB_BIB")
	overlay(&c.Out, "SYLLABIB_OUT")
	overlay(&c.Timezone, "SYLLABIB_TZ")
	overlay(&c.Start, "SYLLABIB_START")
}

// TimezoneOrDefault returns the configured timezone or the default.
func (c *Config) TimezoneOrDefault() string {
	if c.Timezone != "" {
		return c.Timezone
	}
	return DefaultTimezone
}
