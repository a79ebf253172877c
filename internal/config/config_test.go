package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "wellfood-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3017", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "wellfood", cfg.Mongo.Database)
	assert.True(t, cfg.Mongo.EnsureIndexes)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, InsecureDevJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.OTP.CodeTTL())
	assert.Empty(t, cfg.Seed.AdminEmail)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("AUTH_JWT_SECRET", "supersecret")
	t.Setenv("AUTH_TOKEN_TTL_DAYS", "1")
	t.Setenv("OTP_TTL_MINUTES", "5")
	t.Setenv("MONGO_ENSURE_INDEXES", "false")
	t.Setenv("SEED_ADMIN_EMAIL", "root@wellfood.com")
	t.Setenv("SEED_ADMIN_PASSWORD", "bootstrap")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.App.Addr())
	assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 5*time.Minute, cfg.OTP.CodeTTL())
	assert.False(t, cfg.Mongo.EnsureIndexes)
	assert.Equal(t, "root@wellfood.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "bootstrap", cfg.Seed.AdminPassword)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestDurationFallbacks(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 10*time.Second, MongoConfig{}.ConnectTimeout())
	assert.Equal(t, 7*24*time.Hour, AuthConfig{TokenTTLDays: -1}.TokenTTL())
	assert.Equal(t, 10*time.Minute, OTPConfig{TTLMinutes: 0}.CodeTTL())
}
