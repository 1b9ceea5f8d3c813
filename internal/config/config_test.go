package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GRPC_ADDR", "JWT_SECRET", "APP_ENV", "LOG_LEVEL", "LIBRARY_API_URL", "LIBRARY_API_TIMEOUT",
	"USE_STUB_API", "STUB_API_ADDR", "CART_STORE", "REDIS_ADDR", "REDIS_USERNAME", "REDIS_PASSWORD",
	"REDIS_DB", "CART_TTL", "DATABASE_URL", "SHIPPING_FEE", "LOAN_DAYS",
}

func clearEnv(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LIBRARY_API_URL", "http://library.local/api")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, CartStoreMemory, cfg.CartStore)
	assert.Equal(t, 10*time.Second, cfg.LibraryAPITimeout)
	assert.Equal(t, 15000.0, cfg.ShippingFee)
	assert.Equal(t, 14, cfg.LoanDays)
	assert.False(t, cfg.UseStubAPI)
}

func TestLoadFromEnv_StubAndRedis(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("USE_STUB_API", "true")
	t.Setenv("STUB_API_ADDR", "127.0.0.1:9999")
	t.Setenv("CART_STORE", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CART_TTL", "1h")
	t.Setenv("SHIPPING_FEE", "0")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.LibraryAPIURL)
	assert.Equal(t, CartStoreRedis, cfg.CartStore)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.CartTTL)
	assert.Equal(t, 0.0, cfg.ShippingFee)
}

func TestLoadFromEnv_RedisForRevocationsOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("LIBRARY_API_URL", "http://library.local/api")
	t.Setenv("CART_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://desk@localhost/desk")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, CartStorePostgres, cfg.CartStore)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Zero(t, cfg.CartTTL)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"LIBRARY_API_URL": "http://x"}},
		{"missing api url", map[string]string{"JWT_SECRET": "s"}},
		{"bad timeout", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "LIBRARY_API_TIMEOUT": "soon"}},
		{"unknown store", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "CART_STORE": "mongo"}},
		{"bad redis db", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "REDIS_DB": "one"}},
		{"redis without addr", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "CART_STORE": "redis"}},
		{"postgres without dsn", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "CART_STORE": "postgres"}},
		{"negative fee", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "SHIPPING_FEE": "-1"}},
		{"zero loan days", map[string]string{"JWT_SECRET": "s", "LIBRARY_API_URL": "http://x", "LOAN_DAYS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{AppEnv: "dev", LogLevel: "debug"}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	cfg.LogLevel = "loud"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
