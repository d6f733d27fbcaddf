package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/printcon-atlas/atlas-backend/internal/session/domain"
)

// MemoryStore is the single-process fallback used when no Redis is
// configured. Sessions are stored encoded so callers never share slices.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	mu        *sync.Mutex
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s *domain.Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := m.now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	m.sessions[s.ID] = memoryEntry{data: data, expiresAt: now.Add(m.ttl), mu: &sync.Mutex{}}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	e, ok := m.lookupLocked(id)
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return decode(e.data)
}

// Update holds a per-session lock for the whole cycle, so fn may block
// without stalling other sessions.
func (m *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (*domain.Session, error) {
	m.mu.Lock()
	e, ok := m.lookupLocked(id)
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-read under the session lock; a previous writer may have replaced it.
	m.mu.Lock()
	e, ok = m.lookupLocked(id)
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	s, err := decode(e.data)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.ID = id
	s.UpdatedAt = m.now().UTC()

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = memoryEntry{data: data, expiresAt: s.UpdatedAt.Add(m.ttl), mu: e.mu}
	m.mu.Unlock()
	return s, nil
}

func (m *MemoryStore) lookupLocked(id string) (memoryEntry, bool) {
	e, ok := m.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}
	if m.now().After(e.expiresAt) {
		delete(m.sessions, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) sweepLocked() {
	now := m.now()
	for id, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
