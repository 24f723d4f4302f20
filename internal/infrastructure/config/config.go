package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full environment-driven configuration. Every field
// tagged required aborts startup when missing; there are no silent
// fallbacks for secrets.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DBURL      string `env:"DB_URL,      required"`
	MongoDB    string `env:"MONGO_DB,    default=dashboard"`
	RedisURL   string `env:"REDIS_URL,   required"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`

	JWT    JWTConfig
	OAuth  OAuthConfig
	SMTP   SMTPConfig
	Cookie CookieConfig

	SessionSecret  string `env:"SESSION_SECRET,    required"`
	AllowedOrigins string `env:"WHITE_LIST_ORIGIN, required"`
	FrontendURL    string `env:"FRONTEND_URL,      required"`
}

type JWTConfig struct {
	AccessSecret   string        `env:"JWT_ACCESS_SECRET,  required"`
	AccessExpires  time.Duration `env:"JWT_ACCESS_EXPIRES, required"`
	RefreshSecret  string        `env:"JWT_REFRESH_SECRET,  required"`
	RefreshExpires time.Duration `env:"JWT_REFRESH_EXPIRES, required"`
	ResetSecret    string        `env:"JWT_RESET_SECRET,  required"`
	ResetExpires   time.Duration `env:"JWT_RESET_EXPIRES, default=15m"`
}

type OAuthConfig struct {
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,     required"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET, required"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL,  required"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST, required"`
	Port int    `env:"SMTP_PORT, required"`
	User string `env:"SMTP_USER, required"`
	Pass string `env:"SMTP_PASS, required"`
	From string `env:"SMTP_FROM, required"`
}

type CookieConfig struct {
	Domain string `env:"COOKIE_DOMAIN, required"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing required variable fails startup immediately.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, no raw errors in responses).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins splits the CORS allow-list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
