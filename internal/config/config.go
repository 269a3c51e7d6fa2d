// Package config loads runtime settings from an optional YAML file, a .env file
// and SETTLEPLAN_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Journal JournalConfig `mapstructure:"journal"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// JournalConfig controls the in-memory run journal.
type JournalConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Ticks between plan score samples
	ReportEvery uint64 `mapstructure:"report_every" validate:"min=1"`
}

// EngineConfig bounds console-driven simulation.
type EngineConfig struct {
	// Largest tick count a single step command may request
	MaxStep int `mapstructure:"max_step" validate:"min=1"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (settleplan.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("settleplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("SETTLEPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Journal: JournalConfig{Enabled: true}}
	SetDefaults(cfg)
	return cfg
}

// registerDefaults makes every key known to viper so environment variables
// bind even when no config file mentions them.
func registerDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.report_every", d.Journal.ReportEvery)
	v.SetDefault("engine.max_step", d.Engine.MaxStep)
}
