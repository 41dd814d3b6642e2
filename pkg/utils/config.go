package utils

import (
	"errors"
	"io/fs"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Broker    BrokerConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	MediaDir        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type AuthConfig struct {
	TokenExpiryHours int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

type BrokerConfig struct {
	URL            string
	Queue          string
	DialTimeout    time.Duration
	PublishTimeout time.Duration
	RetryBackoff   time.Duration
}

type TelemetryConfig struct {
	Endpoint string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "cinema-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("MEDIA_DIR", "media/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("TOKEN_EXPIRY_HOURS", 24)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_CAPACITY", 10)
	v.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "6s")
	v.SetDefault("RATE_LIMIT_TTL", "10m")
	v.SetDefault("RATE_LIMIT_PREFIX", "rl")
	v.SetDefault("ORDER_EVENTS_QUEUE", "order.created")
	v.SetDefault("AMQP_DIAL_TIMEOUT", "2s")
	v.SetDefault("AMQP_PUBLISH_TIMEOUT", "3s")
	v.SetDefault("AMQP_RETRY_BACKOFF", "10s")

	// .env is optional; plain environment variables are enough in containers.
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			MediaDir:        v.GetString("MEDIA_DIR"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			CORSOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Auth: AuthConfig{
			TokenExpiryHours: v.GetInt("TOKEN_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
			Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
			RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            v.GetDuration("RATE_LIMIT_TTL"),
			Prefix:         v.GetString("RATE_LIMIT_PREFIX"),
		},
		Broker: BrokerConfig{
			URL:            v.GetString("AMQP_URL"),
			Queue:          v.GetString("ORDER_EVENTS_QUEUE"),
			DialTimeout:    v.GetDuration("AMQP_DIAL_TIMEOUT"),
			PublishTimeout: v.GetDuration("AMQP_PUBLISH_TIMEOUT"),
			RetryBackoff:   v.GetDuration("AMQP_RETRY_BACKOFF"),
		},
		Telemetry: TelemetryConfig{
			Endpoint: v.GetString("OTEL_ENDPOINT"),
		},
	}

	if config.RateLimit.Capacity < 1 {
		config.RateLimit.Capacity = 1
	}
	if config.RateLimit.RefillInterval <= 0 {
		config.RateLimit.RefillInterval = time.Second
	}
	if minTTL := 5 * config.RateLimit.RefillInterval; config.RateLimit.TTL < minTTL {
		config.RateLimit.TTL = minTTL
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN builds a pgx connection URL for the database config.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
