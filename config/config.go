// Package config loads insights settings from TOML files and INSIGHTS_*
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/rubiojr/insights/compiler"
	"github.com/rubiojr/insights/errors"
)

// FileName is the configuration file looked up in the working directory
// and the user configuration directory.
const FileName = "insights.toml"

// Config is the complete insights configuration.
type Config struct {
	Generation GenerationConfig `mapstructure:"generation" toml:"generation"`
	Log        LogConfig        `mapstructure:"log" toml:"log"`
	Batch      BatchConfig      `mapstructure:"batch" toml:"batch"`
}

// GenerationConfig controls what the generated source shows.
type GenerationConfig struct {
	ShowAccessModifiers bool `mapstructure:"show_access_modifiers" toml:"show_access_modifiers"`
	ShowConstexprValues bool `mapstructure:"show_constexpr_values" toml:"show_constexpr_values"`
	ShowAllCasts        bool `mapstructure:"show_all_casts" toml:"show_all_casts"`
	IndentWidth         int  `mapstructure:"indent_width" toml:"indent_width"`
	EmitHeaders         bool `mapstructure:"emit_headers" toml:"emit_headers"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	JSON  bool   `mapstructure:"json" toml:"json"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Jobs int `mapstructure:"jobs" toml:"jobs"` // 0 = one per CPU
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generation.show_access_modifiers", true)
	v.SetDefault("generation.show_constexpr_values", false)
	v.SetDefault("generation.show_all_casts", false)
	v.SetDefault("generation.indent_width", 2)
	v.SetDefault("generation.emit_headers", true)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)

	v.SetDefault("batch.jobs", 0)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Unmarshalling plain defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads the configuration. An explicit path must exist; without one
// ./insights.toml and then $XDG_CONFIG_HOME/insights/insights.toml are
// tried. Environment variables (INSIGHTS_GENERATION_INDENT_WIDTH, ...)
// override files.
func Load(path string) (*Config, error) {
	v := newViper()

	if path == "" {
		path = findConfig()
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "config %s", path),
			"create one with: insights config init "+path)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("INSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// findConfig returns the first existing configuration file, or "".
func findConfig() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "insights", FileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate rejects values the generator cannot work with.
func (c *Config) Validate() error {
	if c.Generation.IndentWidth < 1 || c.Generation.IndentWidth > 16 {
		return errors.Newf("generation.indent_width must be between 1 and 16, got %d", c.Generation.IndentWidth)
	}
	if c.Batch.Jobs < 0 {
		return errors.Newf("batch.jobs must not be negative, got %d", c.Batch.Jobs)
	}
	return nil
}

// Options converts the generation settings to translation options.
func (c *Config) Options() compiler.Options {
	opts := compiler.DefaultOptions()
	opts.Flags.SkipAccess = !c.Generation.ShowAccessModifiers
	opts.Flags.ShowConstantExprValue = c.Generation.ShowConstexprValues
	opts.ShowAllImplicitCasts = c.Generation.ShowAllCasts
	opts.IndentWidth = c.Generation.IndentWidth
	opts.EmitHeaders = c.Generation.EmitHeaders
	return opts
}

// WriteDefault writes the default configuration to path. An existing
// file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.WithHint(errors.Newf("%s already exists", path), "remove it first to start over")
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, "failed to encode default config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
