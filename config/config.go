// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/battlenet"
)

// Config holds all application settings
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"battlenet_login.db"`
	UseHTTPS bool   `env:"USE_HTTPS"`
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Battlenet BattlenetConfig `envPrefix:"BATTLENET_"`
}

// BattlenetConfig holds the Battle.net client registration
type BattlenetConfig struct {
	ClientID      string            `env:"CLIENT_ID"`
	ClientSecret  string            `env:"CLIENT_SECRET"`
	RedirectURI   string            `env:"REDIRECT_URI"`
	Scopes        []string          `env:"SCOPES"`
	Headers       map[string]string `env:"HEADERS"`
	Options       map[string]string `env:"OPTIONS"`
	Region        string            `env:"REGION" envDefault:"us"`
	BaseURL       string            `env:"BASE_URL"`
	HTTPTimeout   time.Duration     `env:"HTTP_TIMEOUT" envDefault:"10s"`
	VerifyIDToken bool              `env:"VERIFY_ID_TOKEN"`
}

// Load reads an optional .env file and parses the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// LoadFrom parses settings from an explicit variable map
func LoadFrom(vars map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// DriverConfig returns the client registration consumed by the driver
func (c BattlenetConfig) DriverConfig() authenticator.Config {
	return authenticator.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURI:  c.RedirectURI,
		Scopes:       c.Scopes,
		Headers:      c.Headers,
		Options:      c.Options,
		HTTPTimeout:  c.HTTPTimeout,
	}
}

// DriverOptions returns the Battle.net specific driver options
func (c BattlenetConfig) DriverOptions() []battlenet.Option {
	opts := []battlenet.Option{
		battlenet.WithRegion(c.Region),
		battlenet.WithOpenIDVerification(c.VerifyIDToken),
	}
	if c.BaseURL != "" {
		opts = append(opts, battlenet.WithBaseURL(c.BaseURL))
	}
	return opts
}
