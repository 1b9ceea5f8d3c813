package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Cart store backends selectable with CART_STORE.
const (
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
)

// Config holds the borrow desk configuration
type Config struct {
	GRPCAddr  string
	JWTSecret string
	AppEnv    string
	LogLevel  string

	// Library API
	LibraryAPIURL     string
	LibraryAPITimeout time.Duration
	UseStubAPI        bool   // If true, serve the in-memory stub and point the client at it
	StubAPIAddr       string // Listen address of the stub (required if UseStubAPI is true)

	// Cart persistence
	CartStore     string
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	CartTTL       time.Duration
	DatabaseURL   string

	ShippingFee float64
	LoanDays    int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{
		GRPCAddr: getEnv("GRPC_ADDR", ":50051"),
		AppEnv:   getEnv("APP_ENV", "prod"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT secret (required)
	config.JWTSecret = os.Getenv("JWT_SECRET")
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Library API
	config.UseStubAPI = os.Getenv("USE_STUB_API") == "true"
	if config.UseStubAPI {
		config.StubAPIAddr = getEnv("STUB_API_ADDR", "127.0.0.1:8089")
		config.LibraryAPIURL = "http://" + config.StubAPIAddr
	} else {
		config.LibraryAPIURL = os.Getenv("LIBRARY_API_URL")
		if config.LibraryAPIURL == "" {
			return nil, fmt.Errorf("LIBRARY_API_URL is required when USE_STUB_API is not set")
		}
	}

	timeout, err := getDuration("LIBRARY_API_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	config.LibraryAPITimeout = timeout

	// Redis backs logout revocations whenever REDIS_ADDR is set, and carts
	// when CART_STORE is redis.
	config.RedisAddr = os.Getenv("REDIS_ADDR")
	config.RedisUsername = os.Getenv("REDIS_USERNAME")
	config.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		config.RedisDB = db
	}

	// Cart persistence (default: memory)
	config.CartStore = strings.ToLower(getEnv("CART_STORE", CartStoreMemory))
	switch config.CartStore {
	case CartStoreMemory:
	case CartStoreRedis:
		if config.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CART_STORE is redis")
		}
		ttl, err := getDuration("CART_TTL", 30*24*time.Hour)
		if err != nil {
			return nil, err
		}
		config.CartTTL = ttl
	case CartStorePostgres:
		config.DatabaseURL = os.Getenv("DATABASE_URL")
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when CART_STORE is postgres")
		}
	default:
		return nil, fmt.Errorf("invalid CART_STORE %q (memory, redis or postgres)", config.CartStore)
	}

	config.ShippingFee = 15000
	if feeStr := os.Getenv("SHIPPING_FEE"); feeStr != "" {
		fee, err := strconv.ParseFloat(feeStr, 64)
		if err != nil || fee < 0 {
			return nil, fmt.Errorf("invalid SHIPPING_FEE: %s", feeStr)
		}
		config.ShippingFee = fee
	}

	config.LoanDays = 14
	if daysStr := os.Getenv("LOAN_DAYS"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("invalid LOAN_DAYS: %s", daysStr)
		}
		config.LoanDays = days
	}

	return config, nil
}

// NewLogger builds a console logger for APP_ENV=dev and a JSON logger otherwise.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.AppEnv == "dev" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
