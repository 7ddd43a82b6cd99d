package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/example/statement-analyzer/internal/category"
)

// EnvPrefix prefixes environment overrides, e.g. STATEMENT_SERVER_ADDR
const EnvPrefix = "STATEMENT"

// Config represents the application configuration
type Config struct {
	DefaultCategory string         `mapstructure:"default_category"`
	Currency        string         `mapstructure:"currency"`
	Log             LogConfig      `mapstructure:"log"`
	Server          ServerConfig   `mapstructure:"server"`
	Categories      []CategoryRule `mapstructure:"categories"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

// CategoryRule assigns a category to descriptions containing any keyword
type CategoryRule struct {
	Category string   `mapstructure:"category"`
	Keywords []string `mapstructure:"keywords"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath loads defaults and environment only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("default_category", category.DefaultCategory)
	v.SetDefault("currency", "NPR")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_mb", 20)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) validate() error {
	for i, rule := range c.Categories {
		if strings.TrimSpace(rule.Category) == "" {
			return fmt.Errorf("categories[%d]: category is required", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("categories[%d] %q: at least one keyword is required", i, rule.Category)
		}
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive")
	}
	return nil
}

// CategoryRules returns the configured rules, or the built-in set when the
// config defines none
func (c *Config) CategoryRules() []category.Rule {
	if len(c.Categories) == 0 {
		return category.DefaultRules()
	}
	rules := make([]category.Rule, 0, len(c.Categories))
	for _, r := range c.Categories {
		rules = append(rules, category.Rule{Category: r.Category, Keywords: r.Keywords})
	}
	return rules
}

// Categorizer builds the categorizer described by the config
func (c *Config) Categorizer() *category.Categorizer {
	return category.New(c.CategoryRules(), c.DefaultCategory)
}
