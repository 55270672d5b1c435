// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or
// environment variables.
type Config struct {
	SnapshotPath string `mapstructure:"SNAPSHOT_PATH"`
	SessionPath  string `mapstructure:"SESSION_PATH"`
	RootHandle   string `mapstructure:"ROOT_HANDLE"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	Env          string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment
// variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults are
	// enough to run.
	_ = viper.ReadInConfig()

	viper.SetDefault("SNAPSHOT_PATH", "data/snapshot.json")
	viper.SetDefault("SESSION_PATH", "data/session")
	viper.SetDefault("ROOT_HANDLE", "zezo")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.SnapshotPath == "" {
		return errors.New("SNAPSHOT_PATH is required")
	}
	if c.SessionPath == "" {
		return errors.New("SESSION_PATH is required")
	}
	if c.RootHandle == "" {
		return errors.New("ROOT_HANDLE is required")
	}
	return nil
}
