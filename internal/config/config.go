// Package config loads the TOML configuration for one environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Store kinds.
const (
	StoreMemory   = "memory"
	StoreSqlite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	Environment string `toml:"-"`
	Addr        string `toml:"addr"`
	WebDir      string `toml:"web_dir"`
	// logging
	LogLevel    string `toml:"log_level"`
	LogsPath    string `toml:"logs_path"`
	LogToStdout bool   `toml:"log_to_stdout"`
	LogJSON     bool   `toml:"log_json"`
	// storage
	Store       string `toml:"store"`
	SqlitePath  string `toml:"sqlite_path"`
	PostgresURL string `toml:"postgres_url"`
	RedisAddr   string `toml:"redis_addr"`
	RedisPass   string `toml:"redis_pass"`
	RedisDB     int    `toml:"redis_db"`
	RedisPrefix string `toml:"redis_prefix"`
	CacheSizeMB int    `toml:"cache_size_mb"`
	// metrics
	MetricsNamespace string `toml:"metrics_namespace"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Default returns the settings used when no file or section is present.
func Default() *Config {
	return &Config{
		Addr:             ":8080",
		WebDir:           "web",
		LogLevel:         "info",
		LogToStdout:      true,
		Store:            StoreSqlite,
		SqlitePath:       "familyfit.db",
		RedisAddr:        "localhost:6379",
		RedisPrefix:      "familyfit:",
		MetricsNamespace: "familyfit",
	}
}

// Load reads the env section of the file at path without validating it. A
// missing file yields the defaults; a missing section is an error. Environment variables
// FAMILYFIT_ADDR, FAMILYFIT_POSTGRES_URL and FAMILYFIT_REDIS_PASS override
// the file.
func Load(env, path string) (*Config, error) {
	t := &Toml{}
	if _, err := toml.DecodeFile(path, t); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		t.Development, t.Production = Default(), Default()
	}

	section, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, fmt.Errorf("config %s has no [%s] section", path, strings.ToLower(env))
	}

	cfg := withDefaults(section)
	cfg.Environment = strings.ToLower(env)
	applyEnv(cfg)
	return cfg, nil
}

// Validate checks the store selection. Load leaves it to the caller so
// command-line overrides can be applied first.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreSqlite:
		if c.SqlitePath == "" {
			return errors.New("sqlite store needs sqlite_path")
		}
	case StorePostgres:
		if c.PostgresURL == "" {
			return errors.New("postgres store needs postgres_url or FAMILYFIT_POSTGRES_URL")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("redis store needs redis_addr")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.CacheSizeMB < 0 {
		return fmt.Errorf("cache_size_mb must be >= 0, got %d", c.CacheSizeMB)
	}
	return nil
}

func withDefaults(c *Config) *Config {
	out := *c
	def := Default()
	if out.Addr == "" {
		out.Addr = def.Addr
	}
	if out.WebDir == "" {
		out.WebDir = def.WebDir
	}
	if out.LogLevel == "" {
		out.LogLevel = def.LogLevel
	}
	if out.Store == "" {
		out.Store = def.Store
	}
	out.Store = strings.ToLower(out.Store)
	if out.SqlitePath == "" {
		out.SqlitePath = def.SqlitePath
	}
	if out.RedisAddr == "" {
		out.RedisAddr = def.RedisAddr
	}
	if out.RedisPrefix == "" {
		out.RedisPrefix = def.RedisPrefix
	}
	if out.MetricsNamespace == "" {
		out.MetricsNamespace = def.MetricsNamespace
	}
	return &out
}

func applyEnv(c *Config) {
	if v := os.Getenv("FAMILYFIT_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("FAMILYFIT_POSTGRES_URL"); v != "" {
		c.PostgresURL = v
	}
	if v := os.Getenv("FAMILYFIT_REDIS_PASS"); v != "" {
		c.RedisPass = v
	}
}
