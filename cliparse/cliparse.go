// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultPort        = 8080
	DefaultGenAIModel  = "gemini-2.0-flash"
	DefaultAssignDelay = 50 * time.Millisecond
	DefaultEnvFile     = ".env"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	JWTSecret      string
	GenAIAPIKey    string
	GenAIModel     string
	AssignDelay    time.Duration
	Env            string
	AllowedOrigins []string
	EnvFile        string
}

// Bind registers every config flag on fs.
func Bind(fs *pflag.FlagSet, cfg *Config) {
	// Network and storage (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT verification secret (prefer env)")
	fs.StringVar(&cfg.GenAIAPIKey, "genai-api-key", "", "Gemini API key (prefer env)")

	fs.StringVar(&cfg.GenAIModel, "genai-model", "", "Gemini model used for critiques")
	fs.DurationVar(&cfg.AssignDelay, "assign-delay", 0, "Pause between template assignment writes")
	fs.StringVar(&cfg.Env, "env", "", "Runtime environment (development or production)")
	fs.StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", nil, "CORS origins, comma separated")
	fs.StringVar(&cfg.EnvFile, "env-file", DefaultEnvFile, "Optional .env file")
}

// Resolve fills every field not set by a flag from the environment, then
// from the .env file, then from defaults.
func Resolve(fs *pflag.FlagSet, cfg *Config) error {
	// godotenv never overrides variables that are already set
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", cfg.EnvFile, err)
		}
	}

	env := func(flag, key string, apply func(string) error) error {
		if fs.Changed(flag) {
			return nil
		}
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		if err := apply(v); err != nil {
			return fmt.Errorf("invalid %s env variable: %w", key, err)
		}
		return nil
	}
	str := func(dst *string) func(string) error {
		return func(v string) error { *dst = v; return nil }
	}

	err := errors.Join(
		env("port", "PORT", func(v string) (err error) {
			cfg.Port, err = strconv.Atoi(v)
			return err
		}),
		env("database-url", "DATABASE_URL", str(&cfg.DatabaseURL)),
		env("database-type", "DATABASE_TYPE", str(&cfg.DatabaseType)),
		env("jwt-secret", "JWT_SECRET", str(&cfg.JWTSecret)),
		env("genai-api-key", "GEMINI_API_KEY", str(&cfg.GenAIAPIKey)),
		env("genai-model", "GENAI_MODEL", str(&cfg.GenAIModel)),
		env("assign-delay", "ASSIGN_DELAY", func(v string) (err error) {
			cfg.AssignDelay, err = time.ParseDuration(v)
			return err
		}),
		env("env", "APP_ENV", str(&cfg.Env)),
		env("allowed-origins", "ALLOWED_ORIGINS", func(v string) error {
			cfg.AllowedOrigins = splitList(v)
			return nil
		}),
	)
	if err != nil {
		return err
	}

	// Defaults
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = inferDatabaseType(cfg.DatabaseURL)
	}
	if cfg.GenAIModel == "" {
		cfg.GenAIModel = DefaultGenAIModel
	}
	if !fs.Changed("assign-delay") && os.Getenv("ASSIGN_DELAY") == "" {
		cfg.AssignDelay = DefaultAssignDelay
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	return nil
}

// Check validates the resolved config. The JWT secret is only needed by
// commands that serve requests.
func (c Config) Check(needSecret bool) error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != "sqlite" && c.DatabaseType != "postgres" {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.AssignDelay < 0 {
		return errors.New("assign delay must not be negative")
	}
	if needSecret && c.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	return nil
}

// DriverName maps the database type onto its database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// ParseFlags parses args, resolves the remaining fields and validates the
// result for serving.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("fitlog", pflag.ContinueOnError)
	Bind(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := Resolve(fs, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Check(true); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func inferDatabaseType(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
