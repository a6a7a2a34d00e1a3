package config

import (
	"time"

	"github.com/Govind-619/quickcart-payments/gateways"
	"github.com/Govind-619/quickcart-payments/store"
	"github.com/Govind-619/quickcart-payments/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres connection used by the postgres session store
func InitDB(cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, utils.WrapError(err, "failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// NewSessionStore builds the session store selected by SESSION_STORE
func NewSessionStore(c *Config) (store.SessionStore, error) {
	switch c.SessionStore {
	case StoreRedis:
		s, err := store.NewRedisStore(c.RedisURL)
		if err != nil {
			return nil, utils.WrapError(err, "failed to connect to redis")
		}
		utils.LogInfo("Using redis session store")
		return s, nil
	case StorePostgres:
		db, err := InitDB(c.DB)
		if err != nil {
			return nil, err
		}
		s, err := store.NewPostgresStore(db)
		if err != nil {
			return nil, utils.WrapError(err, "failed to migrate payment_sessions")
		}
		utils.LogInfo("Using postgres session store")
		return s, nil
	default:
		utils.LogInfo("Using in-memory session store; sessions are lost on restart and not shared between instances")
		return store.NewMemoryStore(), nil
	}
}

// NewGateways builds both gateway adapters. Unconfigured adapters are still
// returned so /health can report them and calls fail with a configuration error.
func NewGateways(c *Config) []gateways.Gateway {
	return []gateways.Gateway{
		gateways.NewRazorpayGateway(c.RazorpayKeyID, c.RazorpayKeySecret),
		gateways.NewStripeGateway(gateways.StripeConfig{
			SecretKey:  c.StripeSecretKey,
			SuccessURL: c.StripeSuccessURL,
			CancelURL:  c.StripeCancelURL,
			Timeout:    c.ProviderTimeout,
		}),
	}
}
