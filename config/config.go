package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Port            string
	Env             string
	AllowedOrigin   string
	DefaultCurrency string
	LogDir          string
	ProviderTimeout time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string

	StripeSecretKey  string
	StripeSuccessURL string
	StripeCancelURL  string

	SessionStore string
	RedisURL     string
	DB           DBConfig

	JWTSecret string
	Email     utils.EmailConfig
}

// DBConfig holds the postgres connection settings for the postgres session store
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadConfig loads configuration from environment variables, reading a .env file first when one exists
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	timeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", utils.DefaultProviderTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT: %v", err)
	}

	smtpPort := 0
	if raw := getEnv("SMTP_PORT", ""); raw != "" {
		smtpPort, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
		}
	}

	config := &Config{
		Port:            getEnv("PORT", utils.DefaultPort),
		Env:             getEnv("ENV", ""),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", utils.DefaultAllowedOrigin),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", utils.DefaultCurrency),
		LogDir:          getEnv("LOG_DIR", utils.DefaultLogDir),
		ProviderTimeout: timeout,

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		StripeSecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
		StripeSuccessURL: getEnv("STRIPE_SUCCESS_URL", ""),
		StripeCancelURL:  getEnv("STRIPE_CANCEL_URL", ""),

		SessionStore: strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		RedisURL:     getEnv("REDIS_URL", ""),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", ""),
			SSLMode:  getEnv("DB_SSLMODE", ""),
		},

		JWTSecret: os.Getenv("JWT_SECRET"),
		Email: utils.EmailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", ""),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", ""),
			NotifyTo: getEnv("PAYMENT_NOTIFY_EMAIL", ""),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the server cannot start with. Missing gateway
// credentials are allowed; they only disable the gateway.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.ProviderTimeout < 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must not be negative")
	}

	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
		}
	case StorePostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required when SESSION_STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (want memory, redis or postgres)", c.SessionStore)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
