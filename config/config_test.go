package config

import (
	"testing"
	"time"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/Govind-619/quickcart-payments/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "ALLOWED_ORIGIN", "DEFAULT_CURRENCY", "LOG_DIR", "PROVIDER_TIMEOUT",
		"RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET", "STRIPE_SECRET_KEY", "STRIPE_SUCCESS_URL",
		"STRIPE_CANCEL_URL", "SESSION_STORE", "REDIS_URL", "DB_HOST", "DB_USER", "DB_NAME",
		"JWT_SECRET", "SMTP_HOST", "SMTP_PORT", "SMTP_FROM", "PAYMENT_NOTIFY_EMAIL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, "INR", cfg.DefaultCurrency)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, StoreMemory, cfg.SessionStore)
	assert.False(t, cfg.Email.Enabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_CURRENCY", "USD")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "sk_test", cfg.StripeSecretKey)
	assert.Equal(t, StoreRedis, cfg.SessionStore)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad timeout":       {"PROVIDER_TIMEOUT": "soon"},
		"bad port":          {"PORT": "http"},
		"unknown store":     {"SESSION_STORE": "etcd"},
		"redis without url": {"SESSION_STORE": "redis"},
		"postgres no host":  {"SESSION_STORE": "postgres"},
		"bad smtp port":     {"SMTP_PORT": "x"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewGatewaysReflectsCredentials(t *testing.T) {
	cfg := &Config{StripeSecretKey: "sk_test", RazorpayKeyID: "rzp_test"}

	gws := NewGateways(cfg)
	require.Len(t, gws, 2)

	configured := map[models.Gateway]bool{}
	for _, g := range gws {
		configured[g.Name()] = g.Configured()
	}
	assert.Equal(t, map[models.Gateway]bool{models.GatewayRazorpay: false, models.GatewayStripe: true}, configured)
}

func TestNewSessionStoreDefaultsToMemory(t *testing.T) {
	s, err := NewSessionStore(&Config{SessionStore: StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)
}

func TestDSN(t *testing.T) {
	dsn := DBConfig{Host: "db", Port: "5432", User: "qc", Password: "pw", Name: "payments"}.DSN()
	assert.Equal(t, "host=db port=5432 user=qc password=pw dbname=payments sslmode=disable", dsn)
}
