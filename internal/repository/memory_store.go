package repository

import (
	"context"
	"sync"

	"attempt-engine/internal/engine"
)

// MemoryStore is a map-backed SessionStore for tests and single-process runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]engine.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]engine.Session{}}
}

func (m *MemoryStore) Save(_ context.Context, s *engine.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Answers = make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	m.sessions[s.ID] = cp
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*engine.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := s
	cp.Answers = make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	return &cp, nil
}

func (m *MemoryStore) FindOpen(_ context.Context, quizID, learningSessionID string) (*engine.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.Quiz.ID == quizID && s.LearningSessionID == learningSessionID {
			cp := s
			cp.Answers = make(map[int]int, len(s.Answers))
			for k, v := range s.Answers {
				cp.Answers[k] = v
			}
			return &cp, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
