package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SessionDriverMemory   = "memory"
	SessionDriverPostgres = "postgres"
	SessionDriverRedis    = "redis"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
	Redis    RedisConfig
}

// APIConfig describes the HMHY backend the portal talks to.
type APIConfig struct {
	BaseURL     string
	RefreshPath string
	Timeout     time.Duration
	Headers     map[string]string
}

type SessionConfig struct {
	Driver     string
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
}

type ObservabilityConfig struct {
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
}

type Config struct {
	AppEnv        string
	ServiceName   string
	ServerPort    string
	LogLevel      string
	API           APIConfig
	Session       SessionConfig
	Repositories  RepositoriesConfig
	Observability ObservabilityConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnvOrDefault("APP_ENV", "development"),
		ServiceName: getEnvOrDefault("SERVICE_NAME", "hmhy-portal"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8091"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		API: APIConfig{
			BaseURL:     getEnvOrDefault("API_BASE_URL", "http://localhost:5000/api/v1"),
			RefreshPath: getEnvOrDefault("API_REFRESH_PATH", "/new-token"),
			Timeout:     getDurationOrDefault("API_TIMEOUT", 15*time.Second),
			Headers: map[string]string{
				"ngrok-skip-browser-warning": "true",
			},
		},
		Session: SessionConfig{
			Driver:     strings.ToLower(getEnvOrDefault("SESSION_DRIVER", SessionDriverMemory)),
			CookieName: getEnvOrDefault("SESSION_COOKIE", "hmhy_session"),
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        getDurationOrDefault("SESSION_TTL", 24*time.Hour),
			Secure:     getEnvOrDefault("SESSION_SECURE", "false") == "true",
		},
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5454"),
				DB:       getEnvOrDefault("POSTGRES_DB", "hmhy_portal"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 10,
				MinConns: 2,
			},
			Redis: RedisConfig{
				Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       getIntOrDefault("REDIS_DB", 0),
			},
		},
		Observability: ObservabilityConfig{
			MetricsAddr:  getEnvOrDefault("METRICS_ADDR", ":9092"),
			PprofAddr:    getEnvOrDefault("PPROF_ADDR", ":6060"),
			OTLPEndpoint: getEnvOrDefault("OTLP_ENDPOINT", "otel-collector:4318"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case SessionDriverMemory, SessionDriverRedis:
	case SessionDriverPostgres:
		if c.Repositories.Postgres.Password == "" {
			return fmt.Errorf("POSTGRES_PASSWORD environment variable is required for the postgres session driver")
		}
	default:
		return fmt.Errorf("unknown SESSION_DRIVER %q", c.Session.Driver)
	}

	if c.Session.Secret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("SESSION_SECRET environment variable is required")
		}
		c.Session.Secret = "development-session-secret-change-me"
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
