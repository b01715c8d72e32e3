package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything main needs to wire the process. All values come
// from the environment with development defaults.
type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	CartTTL           time.Duration
	CacheTTL          time.Duration
	StrictAmountCheck bool

	RedisAddr    string // empty disables the cart cache
	MongoURI     string // empty keeps carts in memory
	KafkaBrokers string // empty disables the outbox poller

	PostgresHost     string // empty keeps orders in memory
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	MigrationsPath   string
}

// Load reads the environment once at startup.
func Load() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CartTTL:           getDuration("CART_TTL", 4*time.Hour),
		CacheTTL:          getDuration("CACHE_TTL", 15*time.Minute),
		StrictAmountCheck: getBool("STRICT_AMOUNT_CHECK", false),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		MongoURI:          getEnv("MONGO_URI", ""),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", ""),
		PostgresHost:      getEnv("POSTGRES_HOST", ""),
		PostgresPort:      getInt("POSTGRES_PORT", 5432),
		PostgresUser:      getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:        getEnv("POSTGRES_DB", "fastfood"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
