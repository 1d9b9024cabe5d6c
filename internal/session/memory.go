package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used in tests and as a fallback
// when no database is configured. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memSession
}

type memSession struct {
	Session
	used    []string
	usedSet map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memSession)}
}

func (m *MemoryStore) Create(_ context.Context, locale, difficulty string) (Session, error) {
	buf := make([]byte, 16)
	rand.Read(buf)

	sess := Session{
		Token:      hex.EncodeToString(buf),
		Locale:     locale,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[sess.Token] = &memSession{
		Session: sess,
		usedSet: make(map[string]struct{}),
	}
	m.mu.Unlock()
	return sess, nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s.Session, nil
}

func (m *MemoryStore) SetPrefs(_ context.Context, token, difficulty, locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return ErrNotFound
	}
	s.Difficulty = difficulty
	s.Locale = locale
	return nil
}

func (m *MemoryStore) UsedCities(_ context.Context, token string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]string, len(s.used))
	copy(out, s.used)
	return out, nil
}

func (m *MemoryStore) AddUsedCity(_ context.Context, token, nameEn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return ErrNotFound
	}
	if _, dup := s.usedSet[nameEn]; dup {
		return nil
	}
	s.usedSet[nameEn] = struct{}{}
	s.used = append(s.used, nameEn)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Summary, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, Summary{
			Token:      s.Token,
			Locale:     s.Locale,
			Difficulty: s.Difficulty,
			UsedCities: len(s.used),
			CreatedAt:  s.CreatedAt.Format(time.RFC3339Nano),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}
