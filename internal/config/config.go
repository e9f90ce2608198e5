package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	History   HistoryConfig   `yaml:"history"`
	Database  DatabaseConfig  `yaml:"database"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// HistoryConfig selects where saved workouts live. Backend is "file" or
// "sqlite"; Format applies to the file backend and is "yaml" or "cbor"
// (empty picks by the path's extension).
type HistoryConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Format  string `yaml:"format"`
}

// DatabaseConfig is the optional PostgreSQL database holding user accounts.
// Leaving Host empty disables accounts.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Enabled reports whether an accounts database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Default returns the configuration used when no file is given: a local YAML
// history file and no accounts database.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Host: "127.0.0.1", Port: 8080},
		History: HistoryConfig{Backend: "file", Path: "gymtrack-history.yaml"},
		Tailscale: TailscaleConfig{
			Hostname: "gymtrack",
			StateDir: "tsnet-state",
		},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides. Env vars use the prefix GYMTRACK_ and
// underscore-separated paths:
//
//	GYMTRACK_SERVER_HOST, GYMTRACK_SERVER_PORT, GYMTRACK_AUTH_API_KEY,
//	GYMTRACK_HISTORY_BACKEND, GYMTRACK_HISTORY_PATH, GYMTRACK_HISTORY_FORMAT,
//	GYMTRACK_DB_HOST, GYMTRACK_DB_PORT, GYMTRACK_DB_NAME,
//	GYMTRACK_DB_USER, GYMTRACK_DB_PASSWORD, GYMTRACK_DB_SSLMODE,
//	GYMTRACK_TAILSCALE_ENABLED, GYMTRACK_TAILSCALE_HOSTNAME
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMTRACK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GYMTRACK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GYMTRACK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GYMTRACK_HISTORY_BACKEND"); v != "" {
		cfg.History.Backend = v
	}
	if v := os.Getenv("GYMTRACK_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("GYMTRACK_HISTORY_FORMAT"); v != "" {
		cfg.History.Format = v
	}
	if v := os.Getenv("GYMTRACK_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("GYMTRACK_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("GYMTRACK_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GYMTRACK_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("GYMTRACK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("GYMTRACK_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("GYMTRACK_TAILSCALE_ENABLED"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = on
		}
	}
	if v := os.Getenv("GYMTRACK_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path is required")
	}
	switch c.History.Backend {
	case "", "file", "sqlite":
	default:
		return fmt.Errorf("history.backend must be file or sqlite, got %q", c.History.Backend)
	}
	switch c.History.Format {
	case "", "yaml", "cbor":
	default:
		return fmt.Errorf("history.format must be yaml or cbor, got %q", c.History.Format)
	}
	if c.Database.Enabled() {
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
