package token

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// MemoryStore keeps tokens in process memory. Tokens are lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]SpotifyToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]SpotifyToken)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.tokens[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return st.oauth(), nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[userID] = fromOAuth(userID, tok)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, userID)
	return nil
}
