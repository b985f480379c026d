package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Sheet    SheetConfig    `mapstructure:"sheet"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// SheetConfig holds the Google Sheet CSV export configuration. ID is the
// spreadsheet identifier from the sheet URL; without it every fetch fails.
type SheetConfig struct {
	ID                   string `mapstructure:"id"`
	GID                  int    `mapstructure:"gid"`
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// CacheConfig holds revalidation settings. TTLMinutes is the revalidation
// window; 0 disables caching so every request fetches fresh.
type CacheConfig struct {
	TTLMinutes        int  `mapstructure:"ttl_minutes"`
	BackgroundRefresh bool `mapstructure:"background_refresh"`
}

// RedisConfig holds the optional shared snapshot store connection details
type RedisConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Password           string `mapstructure:"password"`
	Database           int    `mapstructure:"database"`
	SnapshotTTLMinutes int    `mapstructure:"snapshot_ttl_minutes"`
}

// DatabaseConfig holds the optional refresh-audit database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config.yaml is fine; defaults plus env vars still apply.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")

	viper.SetDefault("sheet.id", "")
	viper.SetDefault("sheet.gid", 0)
	viper.SetDefault("sheet.base_url", "https://docs.google.com")
	viper.SetDefault("sheet.timeout", 30)
	viper.SetDefault("sheet.max_retries", 3)
	viper.SetDefault("sheet.max_requests_per_second", 2)

	viper.SetDefault("cache.ttl_minutes", 5)
	viper.SetDefault("cache.background_refresh", false)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.snapshot_ttl_minutes", 30)

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "menuboard")
	viper.SetDefault("database.user", "menuboard_user")
	viper.SetDefault("database.password", "menuboard_pass")

	viper.SetDefault("log.level", "info")
}
