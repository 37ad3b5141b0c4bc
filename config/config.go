package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Matching  MatchingConfig
	Pricing   PricingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DSN string `mapstructure:"dsn"`
}

// MatchingConfig holds cross-platform matching configuration
type MatchingConfig struct {
	MinSimilarity float64 `mapstructure:"min_similarity"`
	Debug         bool    `mapstructure:"debug"`
}

// PricingConfig holds synthetic-price configuration. Seed > 0 makes
// synthesis reproducible; 0 means a time-seeded source.
type PricingConfig struct {
	Variance                float64 `mapstructure:"variance"`
	AvailabilityProbability float64 `mapstructure:"availability_probability"`
	Seed                    int64   `mapstructure:"seed"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricecart/")

	// Environment variable settings
	v.SetEnvPrefix("PRICECART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Storage defaults
	v.SetDefault("storage.dsn", "pricecart.db")

	// Matching defaults
	v.SetDefault("matching.min_similarity", 60.0)
	v.SetDefault("matching.debug", false)

	// Pricing defaults
	v.SetDefault("pricing.variance", 0.1)
	v.SetDefault("pricing.availability_probability", 0.8)
	v.SetDefault("pricing.seed", 0)

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Storage.DSN == "" {
		return fmt.Errorf("storage DSN is required (set PRICECART_STORAGE_DSN)")
	}

	if config.Matching.MinSimilarity < 0 || config.Matching.MinSimilarity > 100 {
		return fmt.Errorf("matching min_similarity must be in [0,100], got: %v", config.Matching.MinSimilarity)
	}

	if config.Pricing.Variance < 0 || config.Pricing.Variance >= 1 {
		return fmt.Errorf("pricing variance must be in [0,1), got: %v", config.Pricing.Variance)
	}

	if config.Pricing.AvailabilityProbability < 0 || config.Pricing.AvailabilityProbability > 1 {
		return fmt.Errorf("pricing availability_probability must be in [0,1], got: %v", config.Pricing.AvailabilityProbability)
	}

	return nil
}
