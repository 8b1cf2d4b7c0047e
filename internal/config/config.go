// Package config loads clientdesk settings from defaults, an optional YAML
// file and CLIENTDESK_* environment variables, in that order. Variables may
// also come from a dotenv file; the real environment wins over it.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnvVar names the variable that points at a YAML config file.
const FileEnvVar = "CLIENTDESK_CONFIG"

// DotenvEnvVar names the variable that points at a dotenv file.
const DotenvEnvVar = "CLIENTDESK_ENV_FILE"

type Config struct {
	DB       DBConfig       `yaml:"db"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Workflow WorkflowConfig `yaml:"workflow"`
}

type DBConfig struct {
	// Path is the SQLite file. Ignored when URL is set.
	Path string `yaml:"path" env:"CLIENTDESK_DB"`
	// URL selects the PostgreSQL backend.
	URL string `yaml:"url" env:"CLIENTDESK_DATABASE_URL"`
}

type HTTPConfig struct {
	Addr           string   `yaml:"addr" env:"CLIENTDESK_HTTP_ADDR"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CLIENTDESK_ALLOWED_ORIGINS" envSeparator:","`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"CLIENTDESK_LOG_LEVEL"`
	UseCases bool   `yaml:"use_cases" env:"CLIENTDESK_LOG_USE_CASES"`
}

type WorkflowConfig struct {
	ValidateBeforeWrite bool `yaml:"validate_before_write" env:"CLIENTDESK_VALIDATE_BEFORE_WRITE"`
	StageProjectDeletes bool `yaml:"stage_project_deletes" env:"CLIENTDESK_STAGE_PROJECT_DELETES"`
}

// DefaultConfig stores data under ~/.clientdesk and serves HTTP on :8080.
func DefaultConfig() Config {
	dbPath := "clientdesk.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".clientdesk", "clientdesk.db")
	}
	return Config{
		DB:   DBConfig{Path: dbPath},
		HTTP: HTTPConfig{Addr: ":8080", AllowedOrigins: []string{"*"}},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads configuration from environ instead of the process
// environment when environ is non-nil.
func LoadFrom(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	} else {
		environ = maps.Clone(environ)
	}
	if path := environ[DotenvEnvVar]; path != "" {
		vars, err := godotenv.Read(path)
		if err != nil {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		for k, v := range vars {
			if _, set := environ[k]; !set {
				environ[k] = v
			}
		}
	}

	cfg := DefaultConfig()
	if path := environ[FileEnvVar]; path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.DB.URL == "" && strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("config: db.path is required when db.url is unset")
	}
	return nil
}

// UsePostgres reports whether the hosted backend is configured.
func (c Config) UsePostgres() bool {
	return c.DB.URL != ""
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", s)
	}
	return l, nil
}

// Logger builds the process logger at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.Log.Level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
