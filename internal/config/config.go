// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MinWidth is the narrowest form layout accepted, in columns.
const MinWidth = 30

// Config holds all regform configuration.
type Config struct {
	Submit Submit `yaml:"submit"`
	Log    Log    `yaml:"log"`
	UI     UI     `yaml:"ui"`
}

// Submit holds submission delivery settings.
type Submit struct {
	Sinks []string `yaml:"sinks"` // "log" | "yaml"
}

// Log holds logger settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// UI holds form display settings.
type UI struct {
	Plain bool `yaml:"plain"` // Line prompts even on a TTY
	Width int  `yaml:"width"` // Form width in columns
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Submit: Submit{
			Sinks: []string{"log"},
		},
		Log: Log{
			Level: "info",
		},
		UI: UI{
			Width: 60,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

var (
	knownSinks  = map[string]bool{"log": true, "yaml": true}
	knownLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if len(c.Submit.Sinks) == 0 {
		return errors.New("config: submit.sinks cannot be empty")
	}
	seen := make(map[string]bool, len(c.Submit.Sinks))
	for _, s := range c.Submit.Sinks {
		if !knownSinks[s] {
			return fmt.Errorf("config: submit.sinks: unknown sink %q (want \"log\" or \"yaml\")", s)
		}
		if seen[s] {
			return fmt.Errorf("config: submit.sinks: %q listed twice", s)
		}
		seen[s] = true
	}
	if !knownLevels[c.Log.Level] {
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.UI.Width < MinWidth {
		return fmt.Errorf("config: ui.width must be at least %d, got %d", MinWidth, c.UI.Width)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: REGFORM_SINK (comma-separated), REGFORM_LOG_LEVEL, REGFORM_PLAIN.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("REGFORM_SINK"); v != "" {
		c.Submit.Sinks = splitList(v)
	}
	if v := os.Getenv("REGFORM_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("REGFORM_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid REGFORM_PLAIN %q: %w", v, err)
		}
		c.UI.Plain = b
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Submit *rawSubmit `yaml:"submit"`
	Log    *rawLog    `yaml:"log"`
	UI     *rawUI     `yaml:"ui"`
}

type rawSubmit struct {
	Sinks *[]string `yaml:"sinks"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

type rawUI struct {
	Plain *bool `yaml:"plain"`
	Width *int  `yaml:"width"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Submit != nil && layer.Submit.Sinks != nil {
		c.Submit.Sinks = append([]string(nil), (*layer.Submit.Sinks)...)
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
	if layer.UI != nil {
		if layer.UI.Plain != nil {
			c.UI.Plain = *layer.UI.Plain
		}
		if layer.UI.Width != nil {
			c.UI.Width = *layer.UI.Width
		}
	}
}
