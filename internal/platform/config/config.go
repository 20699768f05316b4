package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Addr                   string
	Environment            string
	LogLevel               string
	StorageBackend         string
	DataDir                string
	RedisURL               string
	DatabaseURL            string
	StoragePrefix          string
	DataEncryptionKey      string
	RunMigrations          bool
	MigrationsDir          string
	SeedData               bool
	EmailFrom              string
	EmailEnabled           bool
	NotifyEmail            string
	SMTPHost               string
	SMTPPort               int
	SMTPUser               string
	SMTPPassword           string
	SMTPUseTLS             bool
	MaxBodyBytes           int64
	RateLimitPerMinute     int
	TrustProxyHeaders      bool
	PayrollAutogenInterval time.Duration
	MetricsEnabled         bool
	AllowedOrigins         []string
	ServiceName            string
	OTLPEndpoint           string
}

func Load() Config {
	return Config{
		Addr:                   getEnv("APP_ADDR", ":8080"),
		Environment:            getEnv("APP_ENV", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		StorageBackend:         strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:                getEnv("DATA_DIR", "data"),
		RedisURL:               getEnv("REDIS_URL", ""),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		StoragePrefix:          getEnv("STORAGE_PREFIX", "corecrew:"),
		DataEncryptionKey:      getEnv("DATA_ENCRYPTION_KEY", ""),
		RunMigrations:          getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:          getEnv("MIGRATIONS_DIR", "migrations"),
		SeedData:               getEnvBool("SEED_DATA", true),
		EmailFrom:              getEnv("EMAIL_FROM", "no-reply@corecrew.com"),
		EmailEnabled:           getEnvBool("EMAIL_ENABLED", false),
		NotifyEmail:            getEnv("NOTIFY_EMAIL", ""),
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               getEnvInt("SMTP_PORT", 587),
		SMTPUser:               getEnv("SMTP_USER", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:             getEnvBool("SMTP_USE_TLS", true),
		MaxBodyBytes:           int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		TrustProxyHeaders:      getEnvBool("TRUST_PROXY_HEADERS", false),
		PayrollAutogenInterval: getEnvDuration("PAYROLL_AUTOGEN_INTERVAL", 0),
		MetricsEnabled:         getEnvBool("METRICS_ENABLED", true),
		AllowedOrigins:         getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		ServiceName:            getEnv("SERVICE_NAME", "corecrew"),
		OTLPEndpoint:           getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return fmt.Errorf("DATA_DIR is required for the file storage backend")
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required for the redis storage backend")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of memory, file, redis, postgres")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.StorageBackend == BackendMemory {
			return fmt.Errorf("STORAGE_BACKEND memory is not durable and cannot be used in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.PayrollAutogenInterval < 0 {
		return fmt.Errorf("PAYROLL_AUTOGEN_INTERVAL must not be negative")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
