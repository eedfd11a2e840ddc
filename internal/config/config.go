package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config contains console configuration parameters.
type Config struct {
	LogLevel   int        `env:"LOG_LEVEL" envDefault:"0"`
	HTTP       HTTP       `envPrefix:"HTTP_"`
	AccountAPI AccountAPI `envPrefix:"ACCOUNT_API_"`
	Session    Session    `envPrefix:"SESSION_"`
	Redis      Redis      `envPrefix:"REDIS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string   `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool     `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string   `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string   `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// AccountAPI contains remote account service parameters.
type AccountAPI struct {
	Endpoint string        `env:"ENDPOINT"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Session contains verification session store parameters.
type Session struct {
	Store string        `env:"STORE" envDefault:"memory"`
	TTL   time.Duration `env:"TTL" envDefault:"10m"`
}

// Redis contains Redis connection parameters for the redis session store.
type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.AccountAPI.Endpoint == "" {
		return nil, fmt.Errorf("ACCOUNT_API_ENDPOINT is required, e.g. https://auth.yourdomain.org")
	}

	if cfg.Session.Store != SessionStoreMemory && cfg.Session.Store != SessionStoreRedis {
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	return &cfg, nil
}
