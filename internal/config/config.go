// Package config carga la configuración del front web desde variables de entorno.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// AuthMode define cómo se mandan las credenciales al backend.
// Se elige una sola vez; backend.Client la aplica igual en todas las llamadas.
type AuthMode string

const (
	AuthModeBearer AuthMode = "bearer"
	AuthModeCookie AuthMode = "cookie"
)

// StoreKind selecciona el adapter de session.Store.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
	StoreRedis    StoreKind = "redis"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppName string `env:"APP_NAME" envDefault:"adoptme-web"`
	Port    int    `env:"PORT" envDefault:"8080"`

	// Backend REST API (antes: proxy /api de vite)
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:5000"`
	APIPublic  string        `env:"API_PUBLIC_URL" envDefault:""`
	AuthMode   AuthMode      `env:"API_AUTH_MODE" envDefault:"bearer"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	RecommendationsN int `env:"RECOMMENDATIONS_N" envDefault:"12"`

	// Sesiones del navegador
	SessionStore StoreKind     `env:"SESSION_STORE" envDefault:"memory"`
	DatabaseURL  string        `env:"DATABASE_URL" envDefault:""`
	RedisURL     string        `env:"REDIS_URL" envDefault:""`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Addr devuelve la dirección de escucha del server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate revisa combinaciones que env.Parse no puede expresar.
func (c *Config) Validate() error {
	c.AuthMode = AuthMode(strings.ToLower(strings.TrimSpace(string(c.AuthMode))))
	switch c.AuthMode {
	case AuthModeBearer, AuthModeCookie:
	default:
		return fmt.Errorf("invalid API_AUTH_MODE %q (bearer|cookie)", c.AuthMode)
	}

	c.SessionStore = StoreKind(strings.ToLower(strings.TrimSpace(string(c.SessionStore))))
	switch c.SessionStore {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("SESSION_STORE=postgres requires DATABASE_URL")
		}
	case StoreRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("SESSION_STORE=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q (memory|postgres|redis)", c.SessionStore)
	}

	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.RecommendationsN <= 0 {
		c.RecommendationsN = 12
	}
	return nil
}

// Load parsea el entorno y valida.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
