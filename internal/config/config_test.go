package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ACCOUNT_API_ENDPOINT", "https://auth.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.EnableHTTPS)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "https://auth.example.com", cfg.AccountAPI.Endpoint)
	assert.Equal(t, 15*time.Second, cfg.AccountAPI.Timeout)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("ACCOUNT_API_ENDPOINT", "https://auth.example.com")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestNewConfig_MissingEndpoint(t *testing.T) {
	t.Setenv("ACCOUNT_API_ENDPOINT", "")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCOUNT_API_ENDPOINT")
}

func TestNewConfig_UnknownStore(t *testing.T) {
	t.Setenv("ACCOUNT_API_ENDPOINT", "https://auth.example.com")
	t.Setenv("SESSION_STORE", "postgres")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session store")
}
