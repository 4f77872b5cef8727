package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Auth     *Auth
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

const StoragePostgres = "postgres"
const StorageMemory = "memory"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
}

type Database struct {
	DSN     string `env:"DATABASE_URI"`
	Storage string `env:"STORAGE"`
}

type HTTP struct {
	HostString     string        `env:"RUN_ADDRESS"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

type Auth struct {
	// TokenKey is a hex encoded 32 byte key for v4.local tokens.
	TokenKey string        `env:"TOKEN_KEY"`
	TokenTTL time.Duration `env:"TOKEN_TTL"`
	// The admin account is created on start when AdminEmail is set.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func NewConfig() (*Config, error) {
	return Load(os.Args[0], os.Args[1:])
}

// Load reads flags from args, then lets environment variables override them.
func Load(name string, args []string) (*Config, error) {
	var db Database
	var http HTTP
	var auth Auth
	var app App

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&db.DSN, "d", "", "Database string")
	fs.StringVar(&db.Storage, "s", StoragePostgres, "Storage backend: postgres / memory")
	fs.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	fs.DurationVar(&http.RequestTimeout, "t", 5*time.Second, "Request timeout")
	fs.StringVar(&auth.TokenKey, "k", "", "Token key (hex)")
	fs.DurationVar(&auth.TokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	fs.StringVar(&auth.AdminEmail, "admin-email", "", "Admin account email")
	fs.StringVar(&auth.AdminPassword, "admin-password", "", "Admin account password")
	fs.StringVar(&app.LogLevel, "l", `error`, "Log level")
	fs.StringVar(&app.Mode, "m", AppModeDevelop, "PROD / DEV")
	err := fs.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	err = env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	if db.Storage != StoragePostgres && db.Storage != StorageMemory {
		return nil, fmt.Errorf("unknown storage %q", db.Storage)
	}
	if db.Storage == StoragePostgres && db.DSN == "" {
		return nil, fmt.Errorf("database string is required for %s storage", StoragePostgres)
	}

	if auth.AdminEmail != "" && auth.AdminPassword == "" {
		return nil, fmt.Errorf("admin password is required with admin email")
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Auth:     &auth,
		App:      &app,
	}

	return &config, nil
}
