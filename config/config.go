// Package config reads the server configuration from flags and the
// environment. Environment variables win over flags.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Defaults
const (
	DefaultAddress      = "localhost:8080"
	DefaultDatabasePath = "./data/palvelus.db"
	DefaultTimezone     = "Europe/Helsinki"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

// Config holds the server settings.
type Config struct {
	Address      string   `env:"ADDRESS"`
	DatabasePath string   `env:"DATABASE_PATH"`
	Timezone     string   `env:"TIMEZONE"`
	LogLevel     string   `env:"LOG_LEVEL"`
	LogFormat    string   `env:"LOG_FORMAT"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:","`
	Milestones   []int    `env:"MILESTONES" envSeparator:","`
}

// Parse reads flags from the command line and overlays the environment.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	fromEnv := *cfg

	var origins, milestones string
	flag.StringVar(&cfg.Address, "a", DefaultAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabasePath, "d", DefaultDatabasePath, "SQLite database file")
	flag.StringVar(&cfg.Timezone, "tz", DefaultTimezone, "IANA timezone that decides where a day starts")
	flag.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.LogFormat, "log-format", DefaultLogFormat, "json or console")
	flag.StringVar(&origins, "cors", "", "comma-separated allowed CORS origins")
	flag.StringVar(&milestones, "milestones", "", "comma-separated days-remaining milestones")

	flag.Parse()

	cfg.CORSOrigins = splitList(origins)
	parsed, err := parseInts(milestones)
	if err != nil {
		return nil, fmt.Errorf("parse -milestones: %w", err)
	}
	cfg.Milestones = parsed

	if fromEnv.Address != "" {
		cfg.Address = fromEnv.Address
	}
	if fromEnv.DatabasePath != "" {
		cfg.DatabasePath = fromEnv.DatabasePath
	}
	if fromEnv.Timezone != "" {
		cfg.Timezone = fromEnv.Timezone
	}
	if fromEnv.LogLevel != "" {
		cfg.LogLevel = fromEnv.LogLevel
	}
	if fromEnv.LogFormat != "" {
		cfg.LogFormat = fromEnv.LogFormat
	}
	if len(fromEnv.CORSOrigins) > 0 {
		cfg.CORSOrigins = fromEnv.CORSOrigins
	}
	if len(fromEnv.Milestones) > 0 {
		cfg.Milestones = fromEnv.Milestones
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	for _, m := range c.Milestones {
		if m <= 0 {
			return fmt.Errorf("milestone %d must be positive", m)
		}
	}
	return nil
}

// Location loads the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
