// Package config loads the application configuration from environment
// variables (prefix SURVEY) with an optional YAML file underneath. The three
// remote-store credentials are never hardcoded: they arrive through the
// environment, either as SURVEY_REMOTE_* or under the legacy bare names
// (APP_KEY_ID, APP_KEY, FILE_ID) that the original deployment used.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for all environment variables.
const EnvPrefix = "SURVEY"

// Config represents the complete application configuration
type Config struct {
	Cache   CacheConfig   `yaml:"cache" envconfig:"CACHE"`
	Remote  RemoteConfig  `yaml:"remote" envconfig:"REMOTE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// CacheConfig contains the local cache directory configuration. Presence of a
// tabular export in the directory is authoritative; no freshness validation.
type CacheConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"data" validate:"required"`
}

// RemoteConfig contains the object-store fetch configuration. KeyID, Key and
// FileID are required only when the cache is empty and a download is needed;
// they are validated at fetch time, not at load time.
type RemoteConfig struct {
	Endpoint string `yaml:"endpoint" envconfig:"ENDPOINT" default:"s3.eu-central-003.backblazeb2.com" validate:"required,hostname_port|hostname"`
	Bucket   string `yaml:"bucket" envconfig:"BUCKET" default:"salary-survey"`
	KeyID    string `yaml:"key_id" envconfig:"APP_KEY_ID"`
	Key      string `yaml:"key" envconfig:"APP_KEY"`
	FileID   string `yaml:"file_id" envconfig:"FILE_ID"`
	UseSSL   bool   `yaml:"use_ssl" envconfig:"USE_SSL" default:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output string `yaml:"output" envconfig:"OUTPUT" default:"stderr" validate:"oneof=stdout stderr"`
}

// HasCredentials reports whether all three remote credentials are set.
func (r RemoteConfig) HasCredentials() bool {
	return r.KeyID != "" && r.Key != "" && r.FileID != ""
}

// Load loads configuration from environment variables and an optional config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Legacy bare credential names take effect when the prefixed ones are unset
	cfg.applyLegacyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Cache.Dir == "" {
		envConfig.Cache.Dir = fileConfig.Cache.Dir
	}
	if envConfig.Remote.Endpoint == "" {
		envConfig.Remote.Endpoint = fileConfig.Remote.Endpoint
	}
	if envConfig.Remote.Bucket == "" {
		envConfig.Remote.Bucket = fileConfig.Remote.Bucket
	}
	if envConfig.Remote.KeyID == "" {
		envConfig.Remote.KeyID = fileConfig.Remote.KeyID
	}
	if envConfig.Remote.Key == "" {
		envConfig.Remote.Key = fileConfig.Remote.Key
	}
	if envConfig.Remote.FileID == "" {
		envConfig.Remote.FileID = fileConfig.Remote.FileID
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}

	return envConfig
}

// applyLegacyEnv overlays the original deployment's bare environment variable
// names for the remote credentials. Prefixed names win when both are set.
func (c *Config) applyLegacyEnv() {
	if c.Remote.KeyID == "" {
		c.Remote.KeyID = os.Getenv("APP_KEY_ID")
	}
	if c.Remote.Key == "" {
		c.Remote.Key = os.Getenv("APP_KEY")
	}
	if c.Remote.FileID == "" {
		c.Remote.FileID = os.Getenv("FILE_ID")
	}
}

// Validate validates the configuration via struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir: "data",
		},
		Remote: RemoteConfig{
			Endpoint: "s3.eu-central-003.backblazeb2.com",
			Bucket:   "salary-survey",
			UseSSL:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}
