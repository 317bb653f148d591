// Package config handles configuration loading for tsemcp.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Yahoo   YahooConfig   `mapstructure:"yahoo"   yaml:"yahoo"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// YahooConfig holds upstream endpoint and transport settings.
type YahooConfig struct {
	BaseURL       string `mapstructure:"base_url"        yaml:"base_url"`
	TimeoutSec    int    `mapstructure:"timeout_sec"     yaml:"timeout_sec"`
	RateLimit     int    `mapstructure:"rate_limit"      yaml:"rate_limit"`      // requests per window
	RateWindowSec int    `mapstructure:"rate_window_sec" yaml:"rate_window_sec"` // window length
}

// ServerConfig holds MCP server transport settings.
type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr" yaml:"http_addr"` // streamable HTTP listen address
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.tsemcp/config.yaml (home directory)
//  3. /etc/tsemcp/config.yaml (system)
//
// Environment variables override config file values.
// Format: TSEMCP_<SECTION>_<KEY>, e.g., TSEMCP_LOGGING_LEVEL.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".tsemcp"))
	v.AddConfigPath("/etc/tsemcp")

	v.SetEnvPrefix("TSEMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("TSEMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.timeout_sec", 30)
	v.SetDefault("yahoo.rate_limit", 5)
	v.SetDefault("yahoo.rate_window_sec", 1)

	v.SetDefault("server.http_addr", "127.0.0.1:8900")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
