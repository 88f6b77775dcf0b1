// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

// StoreConfig selects the key-value backend for per-user persistence.
type StoreConfig struct {
	Driver string `yaml:"driver"` // file | redis | postgres
	Path   string `yaml:"path"`   // file driver: path to the JSON state file
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type SearchConfig struct {
	PageSize int `yaml:"page_size"`
}

type DashboardConfig struct {
	Port int `yaml:"port"`
}

type Config struct {
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	Poll      PollConfig      `yaml:"poll"`
	Search    SearchConfig    `yaml:"search"`
	Dashboard DashboardConfig `yaml:"dashboard"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 15 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "file"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStatePath()
	}
	if cfg.Poll.Interval <= 0 {
		cfg.Poll.Interval = 1500 * time.Millisecond
	}
	if cfg.Search.PageSize <= 0 {
		cfg.Search.PageSize = 5
	}
	if cfg.Dashboard.Port <= 0 {
		cfg.Dashboard.Port = 8090
	}

	// Minimal validation
	if cfg.API.BaseURL == "" {
		return nil, errors.New("api.base_url is required")
	}
	switch cfg.Store.Driver {
	case "file":
	case "redis":
		if cfg.Redis.URL == "" {
			return nil, errors.New("redis.url is required for store.driver=redis")
		}
	case "postgres":
		if cfg.Database.URL == "" {
			return nil, errors.New("database.url is required for store.driver=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown store.driver %q", cfg.Store.Driver)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "smart-ocr-state.json"
	}
	return home + "/.smart-ocr/state.json"
}
