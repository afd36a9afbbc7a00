// Package config loads pokerdrill settings from an HCL file, with .env and
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lox/pokerdrill/internal/attempts"
)

// DefaultFile is the config file read when none is named.
const DefaultFile = "pokerdrill.hcl"

// Environment variables that override file values.
const (
	EnvAddr      = "POKERDRILL_ADDR"
	EnvScenarios = "POKERDRILL_SCENARIOS"
	EnvStorage   = "POKERDRILL_STORAGE"
	EnvDSN       = "POKERDRILL_DSN"
)

// Config is the complete pokerdrill configuration.
type Config struct {
	Server  ServerSettings
	Storage StorageSettings
	Drill   DrillSettings
}

// ServerSettings configures the HTTP server and logging.
type ServerSettings struct {
	Addr      string `hcl:"addr,optional"`
	Scenarios string `hcl:"scenarios,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	LogFormat string `hcl:"log_format,optional"`
}

// StorageSettings selects the attempt store.
type StorageSettings struct {
	Backend string `hcl:"backend,optional"`
	Path    string `hcl:"path,optional"`
	DSN     string `hcl:"dsn,optional"`
}

// DrillSettings configures generated preflop drills.
type DrillSettings struct {
	Count       int   `hcl:"count,optional"`
	Seed        int64 `hcl:"seed,optional"`
	MaxAttempts int   `hcl:"max_attempts,optional"`
}

// fileConfig mirrors the HCL layout. Every block is optional.
type fileConfig struct {
	Server  *ServerSettings  `hcl:"server,block"`
	Storage *StorageSettings `hcl:"storage,block"`
	Drill   *DrillSettings   `hcl:"drill,block"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Addr:      ":8080",
			Scenarios: "scenarios",
			LogLevel:  "info",
			LogFormat: "console",
		},
		Storage: StorageSettings{
			Backend: attempts.BackendFile,
			Path:    ".pokerdrill",
		},
		Drill: DrillSettings{
			Count:       10,
			MaxAttempts: 64,
		},
	}
}

// Load reads .env, then filename, then applies environment overrides and
// validates the result. A missing config file yields the defaults.
func Load(filename string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an HCL config file over the defaults.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if s := fc.Server; s != nil {
		setString(&cfg.Server.Addr, s.Addr)
		setString(&cfg.Server.Scenarios, s.Scenarios)
		setString(&cfg.Server.LogLevel, s.LogLevel)
		setString(&cfg.Server.LogFormat, s.LogFormat)
	}
	if s := fc.Storage; s != nil {
		setString(&cfg.Storage.Backend, s.Backend)
		setString(&cfg.Storage.Path, s.Path)
		setString(&cfg.Storage.DSN, s.DSN)
	}
	if d := fc.Drill; d != nil {
		if d.Count != 0 {
			cfg.Drill.Count = d.Count
		}
		if d.Seed != 0 {
			cfg.Drill.Seed = d.Seed
		}
		if d.MaxAttempts != 0 {
			cfg.Drill.MaxAttempts = d.MaxAttempts
		}
	}
	return cfg, nil
}

// ApplyEnv overrides file values from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}
	setString(&c.Server.Addr, get(EnvAddr))
	setString(&c.Server.Scenarios, get(EnvScenarios))
	setString(&c.Storage.Backend, get(EnvStorage))
	setString(&c.Storage.DSN, get(EnvDSN))
}

// ApplyEnvFile applies overrides read from a dotenv file without touching
// the process environment.
func (c *Config) ApplyEnvFile(path string) error {
	vals, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.ApplyEnv(func(k string) (string, bool) {
		v, ok := vals[k]
		return v, ok
	})
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if _, port, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("invalid addr %q: %w", c.Server.Addr, err)
	} else if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid port in addr %q", c.Server.Addr)
	}
	if c.Server.Scenarios == "" {
		return errors.New("scenarios directory must be set")
	}
	if _, err := zerolog.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", c.Server.LogFormat)
	}

	switch strings.ToLower(c.Storage.Backend) {
	case attempts.BackendMemory:
	case attempts.BackendFile, attempts.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage %s: path must be set", c.Storage.Backend)
		}
	case attempts.BackendPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage postgres: dsn must be set (or %s)", EnvDSN)
		}
	default:
		return fmt.Errorf("%w: %q", attempts.ErrUnknownBackend, c.Storage.Backend)
	}

	if c.Drill.Count < 1 {
		return fmt.Errorf("drill count must be positive: %d", c.Drill.Count)
	}
	if c.Drill.MaxAttempts < 1 {
		return fmt.Errorf("drill max_attempts must be positive: %d", c.Drill.MaxAttempts)
	}
	return nil
}

// StorageTarget is the argument attempts.Open expects for the configured
// backend. SQLite databases live in <path>/attempts.db unless path names a
// .db file.
func (c *Config) StorageTarget() string {
	switch strings.ToLower(c.Storage.Backend) {
	case attempts.BackendPostgres:
		return c.Storage.DSN
	case attempts.BackendSQLite:
		if filepath.Ext(c.Storage.Path) == ".db" || c.Storage.Path == ":memory:" {
			return c.Storage.Path
		}
		return filepath.Join(c.Storage.Path, "attempts.db")
	case attempts.BackendFile:
		return c.Storage.Path
	}
	return ""
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
