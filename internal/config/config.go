package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	BackendJSON     = "json"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var ErrMissingSecret = errors.New("AUTH_SECRET is required")

type Config struct {
	Env    string
	Server Server
	Store  Store
	Auth   Auth
	Logger Logger
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Store struct {
	Backend     string `env:"STORE_BACKEND" envDefault:"json"`
	Path        string `env:"STORE_PATH"`
	Create      bool   `env:"STORE_CREATE"`
	DatabaseURI string `env:"DATABASE_URI"`
}

type Auth struct {
	Secret   string        `env:"AUTH_SECRET"`
	TokenTTL time.Duration `env:"TOKEN_TTL"`
}

type Logger struct {
	// empty means the level implied by Env
	LogLevel string `env:"LOG_LEVEL"`
}

// Defaults registers fallback values on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("read_timeout", "10s")
	v.SetDefault("write_timeout", "10s")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("store_backend", BackendJSON)
	v.SetDefault("store_path", "data/db.json")
	v.SetDefault("store_create", true)
	v.SetDefault("token_ttl", "24h")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env: v.GetString("app_env"),
		Server: Server{
			RunAddress:      v.GetString("run_address"),
			ReadTimeout:     v.GetDuration("read_timeout"),
			WriteTimeout:    v.GetDuration("write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Store: Store{
			Backend:     v.GetString("store_backend"),
			Path:        v.GetString("store_path"),
			Create:      v.GetBool("store_create"),
			DatabaseURI: v.GetString("database_uri"),
		},
		Auth: Auth{
			Secret:   v.GetString("auth_secret"),
			TokenTTL: v.GetDuration("token_ttl"),
		},
		Logger: Logger{LogLevel: v.GetString("log_level")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required for backend %q", c.Store.Backend)
		}
	case BackendPostgres:
		if c.Store.DatabaseURI == "" {
			return errors.New("DATABASE_URI is required for backend \"postgres\"")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q (supported: json, memory, sqlite, postgres)", c.Store.Backend)
	}

	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// Load reads the optional .env file and the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	v := viper.New()
	Defaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
