package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host              string        `yaml:"host" env:"EVENTS_HOST"`
	Port              int           `yaml:"port" env:"EVENTS_PORT"`
	AllowedOrigins    []string      `yaml:"allowed_origins" env:"EVENTS_ALLOWED_ORIGINS" envSeparator:","`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"EVENTS_READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"EVENTS_SHUTDOWN_TIMEOUT"`
}

// NotificationsConfig holds the in-process notification bus settings.
type NotificationsConfig struct {
	Disabled   bool  `yaml:"disabled" env:"EVENTS_NOTIFICATIONS_DISABLED"`
	BufferSize int64 `yaml:"buffer_size" env:"EVENTS_NOTIFICATIONS_BUFFER_SIZE"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"EVENTS_LOG_LEVEL"`
	Format string `yaml:"format" env:"EVENTS_LOG_FORMAT"`
}

// defaults applies sane defaults to zero-valued fields.
func (c *Config) defaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Notifications.BufferSize == 0 {
		c.Notifications.BufferSize = 64
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// validate checks required fields and value constraints.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadHeaderTimeout < 0 {
		return fmt.Errorf("server.read_header_timeout must be non-negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be non-negative")
	}
	for i, o := range c.Server.AllowedOrigins {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("server.allowed_origins[%d] is empty", i)
		}
	}
	if c.Notifications.BufferSize < 0 {
		return fmt.Errorf("notifications.buffer_size must be non-negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}

// expandEnv replaces ${VAR} references in the listener settings with
// environment variable values.
func (c *Config) expandEnv() {
	c.Server.Host = os.ExpandEnv(c.Server.Host)
	for i := range c.Server.AllowedOrigins {
		c.Server.AllowedOrigins[i] = os.ExpandEnv(c.Server.AllowedOrigins[i])
	}
}

// Load builds the configuration. The YAML file at path is read first when path
// is non-empty. Then the given dotenv files are loaded into the environment
// (missing files are skipped, variables already set win), and EVENTS_*
// variables override the file. Defaults fill the rest before validation.
func Load(path string, dotEnvFiles ...string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	for _, f := range dotEnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.defaults()
	cfg.expandEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
