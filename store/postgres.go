package store

import (
	"context"
	"errors"

	"github.com/Govind-619/quickcart-payments/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore persists sessions in the payment_sessions table through gorm
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore migrates the payment_sessions table and returns the store
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&models.PaymentSession{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Get(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	var session models.PaymentSession
	err := p.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Put upserts on the session id
func (p *PostgresStore) Put(ctx context.Context, session *models.PaymentSession) error {
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		UpdateAll: true,
	}).Create(session).Error
}

// Update locks the row for the duration of the mutator
func (p *PostgresStore) Update(ctx context.Context, sessionID string, mutate Mutator) (*models.PaymentSession, error) {
	var updated *models.PaymentSession

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.PaymentSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		next, err := applyMutator(current, mutate)
		if err != nil {
			return err
		}

		if err := tx.Save(next).Error; err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (p *PostgresStore) List(ctx context.Context, filter ListFilter) ([]models.PaymentSession, error) {
	query := p.db.WithContext(ctx).Model(&models.PaymentSession{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Gateway != "" {
		query = query.Where("gateway = ?", filter.Gateway)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var sessions []models.PaymentSession
	if err := query.Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (p *PostgresStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
