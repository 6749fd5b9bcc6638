// Package config loads bmlc project configuration from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// Config holds the complete bmlc configuration
type Config struct {
	Requires   string       `toml:"requires" yaml:"requires"`
	Extensions []string     `toml:"extensions" yaml:"extensions"`
	Jobs       int          `toml:"jobs" yaml:"jobs"`
	Output     OutputConfig `toml:"output" yaml:"output"`
	Log        LogConfig    `toml:"log" yaml:"log"`

	// Path of the file the configuration was read from, if any.
	Path string `toml:"-" yaml:"-"`
}

// OutputConfig controls how results are presented
type OutputConfig struct {
	ASTFormat string `toml:"ast_format" yaml:"ast_format"`
	Color     *bool  `toml:"color" yaml:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level     string `toml:"level" yaml:"level"`
	Format    string `toml:"format" yaml:"format"`
	File      string `toml:"file" yaml:"file"`             // append logs here instead of stderr
	AddSource bool   `toml:"add_source" yaml:"add_source"` // record the logging call site
}

// Filenames lists the configuration files looked for by Discover, in
// order of preference.
var Filenames = []string{"bml.toml", ".bml.toml", "bml.yaml", ".bml.yaml", "bml.yml", ".bml.yml"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	cfg.Path = path
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(filepath.Dir(path), cfg.Log.File)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover looks for a configuration file in dir. If none exists the
// defaults are returned.
func Discover(dir string) (*Config, error) {
	for _, name := range Filenames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".bml"}
	}
	for i, ext := range c.Extensions {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	if c.Output.ASTFormat == "" {
		c.Output.ASTFormat = "text"
	}
	if c.Output.Color == nil {
		on := true
		c.Output.Color = &on
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks enumerated settings and the requires constraint syntax.
func (c *Config) Validate() error {
	switch c.Output.ASTFormat {
	case "text", "json":
	default:
		return fmt.Errorf("output.ast_format must be text or json, got %q", c.Output.ASTFormat)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("requires: %w", err)
		}
	}
	return nil
}

// ColorEnabled reports whether diagnostics should be styled.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// CheckVersion reports an error if version does not satisfy the
// configuration's requires constraint.
func (c *Config) CheckVersion(version string) error {
	if c.Requires == "" {
		return nil
	}
	con, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("requires: %w", err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("bmlc version %q: %w", version, err)
	}
	if ok, errs := con.Validate(v); !ok {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("bmlc %s does not satisfy %q required by %s: %s",
			version, c.Requires, c.source(), strings.Join(msgs, "; "))
	}
	return nil
}

// HasExtension reports whether path ends in one of the configured
// source file extensions.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func (c *Config) source() string {
	if c.Path == "" {
		return "configuration"
	}
	return c.Path
}
