package session

import (
	"context"
	"sync"

	"cinebook/internal/models"
)

// Config holds session persistence settings
type Config struct {
	StorePath string
}

// Store keeps the current auth token and user profile in memory, falling back
// to the persisted credential store when the in-memory copy is empty. This is
// the one piece of client state that survives an app restart.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *models.User
	persist *CredentialStore
}

// NewStore creates a session store. persist may be nil, in which case the
// session lives only in memory.
func NewStore(persist *CredentialStore) *Store {
	return &Store{persist: persist}
}

// SetCredentials replaces the active session and writes it through to the
// persisted store.
func (s *Store) SetCredentials(ctx context.Context, token string, user models.User) error {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.mu.Unlock()

	if s.persist == nil {
		return nil
	}
	return s.persist.Save(ctx, token, user)
}

// Current returns the active token and user, loading from the persisted store
// when memory is empty. Returns an empty token when nobody is logged in.
func (s *Store) Current(ctx context.Context) (string, *models.User, error) {
	s.mu.RLock()
	token, user := s.token, s.user
	s.mu.RUnlock()

	if token != "" && user != nil {
		return token, user, nil
	}

	if s.persist == nil {
		return "", nil, nil
	}

	token, user, err := s.persist.Load(ctx)
	if err != nil {
		return "", nil, err
	}
	if token == "" || user == nil {
		return "", nil, nil
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	return token, user, nil
}

// Token returns the current auth token for attaching to gateway calls. The
// persisted fallback applies here too.
func (s *Store) Token(ctx context.Context) string {
	token, _, _ := s.Current(ctx)
	return token
}

// Clear tears down the session in memory and in the persisted store. Called
// on logout and whenever the backend reports an expired token.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.persist == nil {
		return nil
	}
	return s.persist.Clear(ctx)
}
