package store

import (
	"context"
	"errors"
	"sort"

	"github.com/Govind-619/quickcart-payments/models"
)

var (
	ErrSessionNotFound = errors.New("payment session not found")
	// ErrImmutableField is returned when a mutator changes a write-once field
	ErrImmutableField = errors.New("payment session id, gateway and provider reference are write-once")
)

// Mutator edits a session in place during Update. It may run more than once
// when a backend retries an optimistic transaction.
type Mutator func(session *models.PaymentSession) error

// ListFilter narrows List results; empty fields match everything
type ListFilter struct {
	Status  models.PaymentStatus
	Gateway models.Gateway
	UserID  string
}

// SessionStore persists payment sessions keyed by session id
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.PaymentSession, error)
	Put(ctx context.Context, session *models.PaymentSession) error
	Update(ctx context.Context, sessionID string, mutate Mutator) (*models.PaymentSession, error)
	List(ctx context.Context, filter ListFilter) ([]models.PaymentSession, error)
	Close() error
}

func (f ListFilter) matches(s *models.PaymentSession) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Gateway != "" && s.Gateway != f.Gateway {
		return false
	}
	if f.UserID != "" && s.UserID != f.UserID {
		return false
	}
	return true
}

// applyMutator runs mutate on a copy and rejects changes to write-once fields
func applyMutator(current models.PaymentSession, mutate Mutator) (*models.PaymentSession, error) {
	next := current
	if err := mutate(&next); err != nil {
		return nil, err
	}
	if next.SessionID != current.SessionID ||
		next.Gateway != current.Gateway ||
		next.ProviderReferenceID != current.ProviderReferenceID {
		return nil, ErrImmutableField
	}
	return &next, nil
}

func sortNewestFirst(sessions []models.PaymentSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}
