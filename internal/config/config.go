// Package config loads claude-lazygit's own settings.
package config

import (
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CLAUDE_LAZYGIT_GENERATE_COUNT.
const EnvPrefix = "CLAUDE_LAZYGIT"

// Config holds all claude-lazygit configuration
type Config struct {
	Claude   ClaudeConfig   `mapstructure:"claude"`
	Generate GenerateConfig `mapstructure:"generate"`
	Lazygit  LazygitConfig  `mapstructure:"lazygit"`
	// Editor overrides editor discovery for edit-then-commit.
	Editor string `mapstructure:"editor"`
}

// ClaudeConfig holds Claude Code invocation settings
type ClaudeConfig struct {
	Command     string   `mapstructure:"command"`
	Args        []string `mapstructure:"args"`
	MaxDiffSize int      `mapstructure:"max_diff_size"`
}

// GenerateConfig holds suggestion settings
type GenerateConfig struct {
	Count int `mapstructure:"count"`
}

// LazygitConfig holds the installed custom command settings
type LazygitConfig struct {
	ConfigPath  string `mapstructure:"config_path"`
	Key         string `mapstructure:"key"`
	Context     string `mapstructure:"context"`
	Description string `mapstructure:"description"`
	Command     string `mapstructure:"command"`
}

// LoadConfigWithFile loads configuration from a specific file if provided,
// otherwise from the global config path. An explicitly named file must exist.
func LoadConfigWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return LoadConfig()
	}

	if _, err := os.Stat(configFile); err != nil {
		return nil, errors.Wrapf(err, "config file %s", configFile)
	}
	return LoadConfigFromPath(configFile)
}

// LoadConfig loads configuration from the global config file.
// If no config file exists, sensible defaults are returned.
func LoadConfig() (*Config, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFromPath(path)
}

// LoadConfigFromPath loads configuration from a specific file path. A missing
// file yields defaults; environment overrides apply either way.
func LoadConfigFromPath(configPath string) (*Config, error) {
	v := newViper()

	if _, err := os.Stat(configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "config file %s", configPath)
		}
		return unmarshal(v)
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", configPath)
	}

	return unmarshal(v)
}

// newViper returns a viper instance with defaults and env overrides bound.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Claude.Command) == "" {
		return errors.New("claude.command must not be empty")
	}
	if c.Claude.MaxDiffSize <= 0 {
		return errors.Newf("claude.max_diff_size must be positive, got %d", c.Claude.MaxDiffSize)
	}
	if c.Generate.Count < 1 || c.Generate.Count > MaxCount {
		return errors.Newf("generate.count must be between 1 and %d, got %d", MaxCount, c.Generate.Count)
	}
	if !strings.Contains(c.Lazygit.Command, SentinelToken) {
		return errors.WithHint(
			errors.Newf("lazygit.command %q must invoke %s", c.Lazygit.Command, SentinelToken),
			"The installer finds its entry again by that name.",
		)
	}
	return nil
}

// setDefaults sets all default values for configuration
func setDefaults(v *viper.Viper) {
	// Claude defaults
	v.SetDefault("claude.command", DefaultClaudeCommand)
	v.SetDefault("claude.args", []string{})
	v.SetDefault("claude.max_diff_size", DefaultMaxDiffSize)

	// Generate defaults
	v.SetDefault("generate.count", DefaultCount)

	// Lazygit defaults
	v.SetDefault("lazygit.config_path", "")
	v.SetDefault("lazygit.key", DefaultLazygitKey)
	v.SetDefault("lazygit.context", DefaultLazygitContext)
	v.SetDefault("lazygit.description", DefaultLazygitDescription)
	v.SetDefault("lazygit.command", DefaultLazygitCommand)

	v.SetDefault("editor", "")
}
