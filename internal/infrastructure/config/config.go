package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Log    LogConfig
	Engine EngineConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// EngineConfig holds the settlement engine parameters
type EngineConfig struct {
	AnnualInterestPct  float64 // annual interest used for surcharges and cheque cost
	DefaultGraceDays   int     // days before a cheque starts accruing financial cost
	ReachTolerance     float64 // tolerance when checking nominal reaches the net target
	RefinancingOffsets []int   // default day offsets for refinancing plans
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SETTLE_ prefix (e.g., SETTLE_ENGINE_ANNUAL_INTEREST_PCT)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	v.SetDefault("app.name", "settlement")
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("engine.annual_interest_pct", 96.0)
	v.SetDefault("engine.default_grace_days", 45)
	v.SetDefault("engine.reach_tolerance", 1.0)
	v.SetDefault("engine.refinancing_offsets", []int{30, 60, 90})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SETTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Engine: EngineConfig{
			AnnualInterestPct:  v.GetFloat64("engine.annual_interest_pct"),
			DefaultGraceDays:   v.GetInt("engine.default_grace_days"),
			ReachTolerance:     v.GetFloat64("engine.reach_tolerance"),
			RefinancingOffsets: v.GetIntSlice("engine.refinancing_offsets"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	if c.Engine.AnnualInterestPct < 0 {
		return fmt.Errorf("engine.annual_interest_pct must not be negative, got %v", c.Engine.AnnualInterestPct)
	}
	if c.Engine.DefaultGraceDays < 0 {
		return fmt.Errorf("engine.default_grace_days must not be negative, got %d", c.Engine.DefaultGraceDays)
	}
	if c.Engine.ReachTolerance < 0 {
		return fmt.Errorf("engine.reach_tolerance must not be negative, got %v", c.Engine.ReachTolerance)
	}
	for _, offset := range c.Engine.RefinancingOffsets {
		if offset <= 0 {
			return fmt.Errorf("engine.refinancing_offsets must all be positive, got %d", offset)
		}
	}
	return nil
}
