package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DB_"`
	Auth     AuthConfig     `env:",prefix=AUTH_"`
	App      AppConfig      `env:",prefix=APP_"`
}

type ServerConfig struct {
	Port        string `env:"PORT,default=8080"`
	Host        string `env:"HOST,default=0.0.0.0"`
	CORSOrigins string `env:"CORS_ORIGINS,default=*"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME,default=dropenote"`
	SSLMode  string `env:"SSL_MODE,default=disable"`
}

type AuthConfig struct {
	// SessionTTL bounds both the session row and the cookie max-age.
	SessionTTL   time.Duration `env:"SESSION_TTL,default=168h"`
	CookieName   string        `env:"COOKIE_NAME,default=dropenote_session"`
	JWTSecret    string        `env:"JWT_SECRET"`
	AccessExpiry time.Duration `env:"ACCESS_EXPIRY,default=15m"`
}

type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	SentryDSN   string `env:"SENTRY_DSN"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Database.Host, c.Database.User, c.Database.Password, c.Database.Name, c.Database.Port, c.Database.SSLMode)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
