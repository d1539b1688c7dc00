// Package config resolves bragboard settings.
//
// Precedence, lowest first: built-in defaults, config.yaml in the config
// directory, .env files, then BRAGBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigDir     = "BRAGBOARD_CONFIG_DIR"
	EnvAPIURL        = "BRAGBOARD_API_URL"
	EnvTimeout       = "BRAGBOARD_TIMEOUT"
	EnvLogLevel      = "BRAGBOARD_LOG_LEVEL"
	EnvLogDev        = "BRAGBOARD_LOG_DEV"
	EnvPollInterval  = "BRAGBOARD_POLL_INTERVAL"
	EnvNotifyStore   = "BRAGBOARD_NOTIFY_STORE"
	EnvRedisAddr     = "BRAGBOARD_REDIS_ADDR"
	EnvRedisPassword = "BRAGBOARD_REDIS_PASSWORD"
	EnvRedisDB       = "BRAGBOARD_REDIS_DB"
)

// FileName is the YAML file looked up in the config directory.
const FileName = "config.yaml"

// Notification snapshot backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config holds all bragboard settings.
type Config struct {
	APIURL        string              `yaml:"api_url"`
	Timeout       string              `yaml:"timeout"`
	Logging       LoggingConfig       `yaml:"logging"`
	Insights      InsightsConfig      `yaml:"insights"`
	Notifications NotificationsConfig `yaml:"notifications"`

	dir string
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// InsightsConfig tunes the local aggregates.
type InsightsConfig struct {
	TopK       int `yaml:"top_k"`
	WindowDays int `yaml:"window_days"`
}

// NotificationsConfig configures polling and where the seen state lives.
type NotificationsConfig struct {
	PollInterval string      `yaml:"poll_interval"`
	Store        string      `yaml:"store"`
	Redis        RedisConfig `yaml:"redis"`
}

// RedisConfig addresses the shared notification store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      string `yaml:"ttl"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		APIURL:  "http://127.0.0.1:8000",
		Timeout: "30s",
		Logging: LoggingConfig{Level: "warn"},
		Insights: InsightsConfig{
			TopK:       3,
			WindowDays: 7,
		},
		Notifications: NotificationsConfig{
			PollInterval: "5s",
			Store:        StoreFile,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				TTL:  "720h",
			},
		},
	}
}

// Dir returns the configuration directory.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bragboard")
}

// LoadDotEnv loads the given .env files into the environment, skipping
// missing ones. Variables already set win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load resolves the configuration rooted at dir.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.dir = dir

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogDev); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogDev, err)
		}
		c.Logging.Development = dev
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		c.Notifications.PollInterval = v
	}
	if v := os.Getenv(EnvNotifyStore); v != "" {
		c.Notifications.Store = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Notifications.Redis.Addr = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Notifications.Redis.Password = v
	}
	if v := os.Getenv(EnvRedisDB); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRedisDB, err)
		}
		c.Notifications.Redis.DB = db
	}
	return nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	for name, raw := range map[string]string{
		"timeout":                     c.Timeout,
		"notifications.poll_interval": c.Notifications.PollInterval,
	} {
		if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive duration", name, raw)
		}
	}
	if c.Notifications.Redis.TTL != "" {
		if _, err := time.ParseDuration(c.Notifications.Redis.TTL); err != nil {
			return fmt.Errorf("invalid notifications.redis.ttl %q: %w", c.Notifications.Redis.TTL, err)
		}
	}
	switch c.Notifications.Store {
	case StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid notifications.store %q: must be %q or %q", c.Notifications.Store, StoreFile, StoreRedis)
	}
	if c.Insights.TopK <= 0 || c.Insights.WindowDays <= 0 {
		return fmt.Errorf("insights.top_k and insights.window_days must be positive")
	}
	return nil
}

// Dir returns the directory the configuration was loaded from.
func (c *Config) Dir() string {
	return c.dir
}

// RequestTimeout is the per-command timeout.
func (c *Config) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// PollInterval is the notification polling cadence.
func (c *Config) PollInterval() time.Duration {
	d, _ := time.ParseDuration(c.Notifications.PollInterval)
	return d
}

// RedisTTL is how long a shared notification snapshot lives; zero never expires.
func (c *Config) RedisTTL() time.Duration {
	d, _ := time.ParseDuration(c.Notifications.Redis.TTL)
	return d
}

// Save writes the file-backed part of the configuration.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, FileName), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
