package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Govind-619/quickcart-payments/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(userID string, gateway models.Gateway, createdAt time.Time) *models.PaymentSession {
	id := uuid.NewString()
	return &models.PaymentSession{
		SessionID:           id,
		UserID:              userID,
		Gateway:             gateway,
		Amount:              250,
		Currency:            "INR",
		ProviderReferenceID: "ref-" + id,
		Status:              models.PaymentStatusPending,
		CreatedAt:           createdAt.UTC().Truncate(time.Millisecond),
		UpdatedAt:           createdAt.UTC().Truncate(time.Millisecond),
	}
}

// runStoreContract exercises behaviour every SessionStore backend must share
func runStoreContract(t *testing.T, s SessionStore) {
	ctx := context.Background()
	userID := "user-" + uuid.NewString()
	base := time.Now().Add(-time.Hour)

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		session := newSession(userID, models.GatewayRazorpay, base)
		require.NoError(t, s.Put(ctx, session))

		got, err := s.Get(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, session.SessionID, got.SessionID)
		assert.Equal(t, session.ProviderReferenceID, got.ProviderReferenceID)
		assert.Equal(t, models.PaymentStatusPending, got.Status)
	})

	t.Run("put overwrites", func(t *testing.T) {
		session := newSession(userID, models.GatewayStripe, base.Add(time.Minute))
		require.NoError(t, s.Put(ctx, session))

		session.Amount = 99
		require.NoError(t, s.Put(ctx, session))

		got, err := s.Get(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, 99.0, got.Amount)
	})

	t.Run("update status", func(t *testing.T) {
		session := newSession(userID, models.GatewayRazorpay, base.Add(2*time.Minute))
		require.NoError(t, s.Put(ctx, session))

		updated, err := s.Update(ctx, session.SessionID, func(p *models.PaymentSession) error {
			p.Status = models.PaymentStatusPaid
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, updated.Status)

		got, err := s.Get(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, got.Status)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := s.Update(ctx, uuid.NewString(), func(p *models.PaymentSession) error { return nil })
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("update rejects write-once fields", func(t *testing.T) {
		session := newSession(userID, models.GatewayRazorpay, base.Add(3*time.Minute))
		require.NoError(t, s.Put(ctx, session))

		_, err := s.Update(ctx, session.SessionID, func(p *models.PaymentSession) error {
			p.Gateway = models.GatewayStripe
			return nil
		})
		assert.ErrorIs(t, err, ErrImmutableField)

		_, err = s.Update(ctx, session.SessionID, func(p *models.PaymentSession) error {
			p.ProviderReferenceID = "other"
			return nil
		})
		assert.ErrorIs(t, err, ErrImmutableField)

		got, err := s.Get(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, models.GatewayRazorpay, got.Gateway)
		assert.Equal(t, session.ProviderReferenceID, got.ProviderReferenceID)
	})

	t.Run("update mutator error leaves record", func(t *testing.T) {
		session := newSession(userID, models.GatewayStripe, base.Add(4*time.Minute))
		require.NoError(t, s.Put(ctx, session))

		boom := errors.New("boom")
		_, err := s.Update(ctx, session.SessionID, func(p *models.PaymentSession) error {
			p.Status = models.PaymentStatusPaid
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := s.Get(ctx, session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, got.Status)
	})

	t.Run("list filters newest first", func(t *testing.T) {
		all, err := s.List(ctx, ListFilter{UserID: userID})
		require.NoError(t, err)
		require.Len(t, all, 5)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
		}

		paid, err := s.List(ctx, ListFilter{UserID: userID, Status: models.PaymentStatusPaid})
		require.NoError(t, err)
		assert.Len(t, paid, 1)

		stripeOnly, err := s.List(ctx, ListFilter{UserID: userID, Gateway: models.GatewayStripe})
		require.NoError(t, err)
		assert.Len(t, stripeOnly, 2)
	})
}
