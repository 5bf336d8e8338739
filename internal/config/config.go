// Package config loads the optional YAML configuration file.
//
// Everything in it can also be set through flags or OPENROUTER_*
// environment variables; the file just makes the choices stick. A missing
// file is not an error and yields the defaults.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Model is the OpenRouter model identifier.
	Model string `yaml:"model"`

	// BaseURL is the OpenRouter API base URL.
	BaseURL string `yaml:"base_url"`

	// SystemPrompt, if set, replaces the built-in system prompt sent to
	// the model. The replacement must still teach the ACTION grammar or
	// the assistant degrades to plain chat.
	SystemPrompt string `yaml:"system_prompt"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Model:   "deepseek/deepseek-r1-0528:free",
		BaseURL: "https://openrouter.ai/api/v1",
	}
}

// Normalize fills in missing values so partially-filled configs behave.
func (c *Config) Normalize() {
	d := Default()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
}

// Load reads the configuration from the given YAML path. A nonexistent
// file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}
