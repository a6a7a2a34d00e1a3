package store

import (
	"context"
	"sync"

	"github.com/Govind-619/quickcart-payments/models"
)

// MemoryStore keeps sessions for the lifetime of the process. Sessions are not
// shared across instances and are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.PaymentSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.PaymentSession)}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*models.PaymentSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Put inserts the session, overwriting any record with the same id
func (m *MemoryStore) Put(_ context.Context, session *models.PaymentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.SessionID] = *session
	return nil
}

func (m *MemoryStore) Update(_ context.Context, sessionID string, mutate Mutator) (*models.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	next, err := applyMutator(current, mutate)
	if err != nil {
		return nil, err
	}
	m.sessions[sessionID] = *next

	updated := *next
	return &updated, nil
}

func (m *MemoryStore) List(_ context.Context, filter ListFilter) ([]models.PaymentSession, error) {
	m.mu.RLock()
	result := make([]models.PaymentSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		if filter.matches(&s) {
			result = append(result, s)
		}
	}
	m.mu.RUnlock()

	sortNewestFirst(result)
	return result, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
