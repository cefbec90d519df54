package repository

import (
	"context"
	"sync"
	"time"

	"sst_portal_backend/internal/onboarding/domain"

	"github.com/google/uuid"
)

// InMemory keeps sessions in process memory. Sessions idle for longer than
// the TTL are treated as gone.
type InMemory struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewInMemory creates an empty store. A zero ttl keeps sessions forever.
func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{
		sessions: make(map[uuid.UUID]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *InMemory) Create(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *InMemory) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (m *InMemory) Update(_ context.Context, id uuid.UUID, fn MutateFunc) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	m.sessions[id] = next
	return next.Clone(), nil
}

func (m *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// lookup must be called with mu held.
func (m *InMemory) lookup(id uuid.UUID) (*domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	return s, nil
}
