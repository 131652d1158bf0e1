// Package config provides configuration management for mdalert.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mdalert/pkg/alert"
)

// CustomType is a user defined or overridden alert type.
type CustomType struct {
	Emoji string `yaml:"emoji,omitempty" toml:"emoji,omitempty" json:"emoji,omitempty"`
	SVG   string `yaml:"svg,omitempty" toml:"svg,omitempty" json:"svg,omitempty"`
}

// Config holds the mdalert configuration.
type Config struct {
	Icons       string                `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty"`
	OnUnknown   string                `yaml:"on_unknown,omitempty" toml:"on_unknown,omitempty" json:"on_unknown,omitempty"`
	Marker      string                `yaml:"marker,omitempty" toml:"marker,omitempty" json:"marker,omitempty"`
	Document    bool                  `yaml:"document,omitempty" toml:"document,omitempty" json:"document,omitempty"`
	CustomTypes map[string]CustomType `yaml:"custom_types,omitempty" toml:"custom_types,omitempty" json:"custom_types,omitempty"`
}

// IconModes lists the accepted values of Icons.
var IconModes = []string{"vector-image", "glyph", "none", "svg", "emoji"}

// UnknownPolicies lists the accepted values of OnUnknown.
var UnknownPolicies = []string{"skip", "abort"}

// Validate checks option values. Custom type completeness is checked when
// the alert registry is built.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Icons, validation.In(toAny(IconModes)...)),
		validation.Field(&c.OnUnknown, validation.In(toAny(UnknownPolicies)...)),
		validation.Field(&c.Marker, validation.Length(0, 16), validation.By(noWhitespace)),
	)
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func noWhitespace(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, " \t\r\n") {
		return validation.NewError("validation_marker_whitespace", "must not contain whitespace")
	}
	return nil
}

// AlertConfig converts c into the transform configuration.
func (c *Config) AlertConfig() (alert.Config, error) {
	icons, err := alert.ParseIconMode(c.Icons)
	if err != nil {
		return alert.Config{}, err
	}
	policy, err := alert.ParseUnknownPolicy(c.OnUnknown)
	if err != nil {
		return alert.Config{}, err
	}

	cfg := alert.Config{
		Icons:     icons,
		OnUnknown: policy,
	}
	if c.Marker != "" {
		cfg.Matcher = alert.MarkerMatcher{Marker: c.Marker}
	}
	if len(c.CustomTypes) > 0 {
		cfg.CustomTypes = make(map[string]alert.CustomType, len(c.CustomTypes))
		for name, ct := range c.CustomTypes {
			cfg.CustomTypes[name] = alert.CustomType{Glyph: ct.Emoji, VectorImage: ct.SVG}
		}
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if icons := os.Getenv("MDALERT_ICONS"); icons != "" {
		c.Icons = icons
	}
	if policy := os.Getenv("MDALERT_ON_UNKNOWN"); policy != "" {
		c.OnUnknown = policy
	}
	if marker := os.Getenv("MDALERT_MARKER"); marker != "" {
		c.Marker = marker
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdalert", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdalert", "config.yml")
	}

	return filepath.Join(home, ".config", "mdalert", "config.yml")
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Save writes the configuration to the specified path. Files ending in
// .toml are written as TOML, everything else as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A .env file in the working directory is read first; it never
// replaces variables that are already set.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// Resolve loads the configuration at path, or at DefaultConfigPath when path
// is empty, applies environment overrides and validates the result.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg, err := LoadWithEnv(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
