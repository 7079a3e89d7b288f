package semdom

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config bounds a single Parse call. The zero value is usable; defaults are
// applied before parsing starts.
type Config struct {
	// MaxInputSize caps the raw markup in bytes. Larger inputs are
	// rejected before any parsing work happens.
	MaxInputSize int `yaml:"max_input_size"`

	// MaxDepth caps tree depth. Elements below the limit are silently
	// dropped rather than failing the parse.
	MaxDepth int `yaml:"max_depth"`

	// ExcludeTags lists tag names whose subtrees are skipped entirely.
	ExcludeTags []string `yaml:"exclude_tags"`
}

func (c Config) withDefaults() Config {
	if c.MaxInputSize <= 0 {
		c.MaxInputSize = 10 * 1024 * 1024
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 50
	}
	if len(c.ExcludeTags) == 0 {
		c.ExcludeTags = []string{"script", "style", "noscript", "template"}
	}
	return c
}

func (c Config) excluded(tag string) bool {
	for _, t := range c.ExcludeTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// LoadConfigFile reads a YAML Config from path. A missing file is an error;
// callers that treat the file as optional should stat it first.
func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
