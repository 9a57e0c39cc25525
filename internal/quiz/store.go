package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/p-n-ai/knowledge-hub/internal/platform/idgen"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("quiz session not found")

// SessionStore persists session state between requests.
type SessionStore interface {
	CreateSession(ctx context.Context, st State) (string, error)
	GetSession(ctx context.Context, id string) (State, error)
	SaveSession(ctx context.Context, id string, st State) error
	DeleteSession(ctx context.Context, id string) error
}

// MemorySessionStore is an in-memory SessionStore for development and tests.
type MemorySessionStore struct {
	sessions map[string]State
	mu       sync.RWMutex
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]State),
	}
}

func (s *MemorySessionStore) CreateSession(_ context.Context, st State) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := idgen.New()
	s.sessions[id] = copyState(st)
	return id, nil
}

func (s *MemorySessionStore) GetSession(_ context.Context, id string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return copyState(st), nil
}

func (s *MemorySessionStore) SaveSession(_ context.Context, id string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.sessions[id] = copyState(st)
	return nil
}

func (s *MemorySessionStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

func copyState(st State) State {
	answers := make(map[int]int, len(st.Answers))
	for k, v := range st.Answers {
		answers[k] = v
	}
	st.Answers = answers
	st.Result = st.Result.clone()
	st.Lesson = st.Lesson.clone()
	return st
}
