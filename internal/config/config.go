package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `validate:"required,oneof=development stage production"`
	ShopName string `validate:"required"`

	Http Http

	Cors CORS `validate:"required"`

	Postgres Postgres `validate:"required"`

	SMTP SMTP

	Cloudinary Cloudinary

	Kafka Kafka

	Cache Cache
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

// SMTP carries the mail collaborator credentials. An empty user or
// password means the collaborator is unconfigured and notifications
// are skipped, not failed.
type SMTP struct {
	Host     string
	Port     int `validate:"gte=0,lte=65535"`
	User     string
	Password string
	From     string
	// ContactEmail receives contact-form relays. Falls back to From.
	ContactEmail string
}

func (s SMTP) Configured() bool {
	return s.User != "" && s.Password != ""
}

// Cloudinary is the image host collaborator. Unconfigured means
// uploads are skipped and records keep an empty image URL.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c Cloudinary) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Kafka configures the optional order event stream. No brokers means
// events are not published.
type Kafka struct {
	Brokers      []string `validate:"dive,hostname_port"`
	Topic        string
	BatchTimeout time.Duration `validate:"gte=0"`
}

func (k Kafka) Configured() bool {
	return len(k.Brokers) > 0
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

func New() Config {
	return Config{
		Env:      env("ENV", "development"),
		ShopName: env("SHOP_NAME", "Bunai From The Hills"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: splitList(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000")),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "shop"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		SMTP: SMTP{
			Host:         env("SMTP_HOST", "smtp.gmail.com"),
			Port:         envInt("SMTP_PORT", 587),
			User:         env("EMAIL_USER", ""),
			Password:     env("EMAIL_PASS", ""),
			From:         env("EMAIL_FROM", env("EMAIL_USER", "")),
			ContactEmail: env("CONTACT_EMAIL", ""),
		},

		Cloudinary: Cloudinary{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
		},

		Kafka: Kafka{
			Brokers:      splitList(env("KAFKA_BROKERS", "")),
			Topic:        env("KAFKA_TOPIC", "order-events"),
			BatchTimeout: envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
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

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
