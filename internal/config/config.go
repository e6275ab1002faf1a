// Package config loads server configuration with layered sources:
// built-in defaults, then an optional YAML file, then environment
// variables. Precedence: ENV > file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"gamerec.yaml",
	"gamerec.yml",
	"/etc/gamerec/config.yaml",
	"/etc/gamerec/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "GAMEREC_CONFIG"

// envPrefix namespaces environment overrides, e.g.
// GAMEREC_CATALOG__PATH=/data/recommend.csv sets catalog.path.
const envPrefix = "GAMEREC_"

// Config is the root configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Images    ImagesConfig    `koanf:"images"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig selects and configures the catalog source.
type CatalogConfig struct {
	Source       string        `koanf:"source" validate:"oneof=csv sqlite redis"`
	Path         string        `koanf:"path"`
	RedisURL     string        `koanf:"redis_url"`
	RedisDB      int           `koanf:"redis_db" validate:"gte=0"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheSize    int           `koanf:"cache_size" validate:"gte=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// RecommendConfig configures the recommender.
type RecommendConfig struct {
	TopN   int    `koanf:"top_n" validate:"gt=0"`
	Metric string `koanf:"metric" validate:"oneof=euclidean manhattan chebyshev"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"gt=0,lte=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// ImagesConfig configures gallery image resolution.
type ImagesConfig struct {
	Dir       string `koanf:"dir"`
	Ext       string `koanf:"ext"`
	PrefixLen int    `koanf:"prefix_len" validate:"gte=0"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:       "csv",
			Path:         "recommend.csv",
			RedisURL:     "redis://127.0.0.1:6379",
			RedisDB:      0,
			CacheEnabled: true,
			CacheSize:    8,
			CacheTTL:     time.Minute,
		},
		Recommend: RecommendConfig{
			TopN:   5,
			Metric: "euclidean",
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8087,
			Timeout: 30 * time.Second,
		},
		Images: ImagesConfig{
			Dir:       "images",
			Ext:       ".jpg",
			PrefixLen: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags plus the
// cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Catalog.Source {
	case "csv", "sqlite":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for %s sources", c.Catalog.Source)
		}
	case "redis":
		if c.Catalog.RedisURL == "" {
			return fmt.Errorf("catalog.redis_url is required for redis sources")
		}
	}

	return nil
}

// envTransform maps GAMEREC_SECTION__KEY_NAME to section.key_name.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
