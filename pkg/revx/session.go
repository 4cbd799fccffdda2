package revx

import (
	"context"
	"encoding/json"
	"sync"
)

// Session holds the client's authentication state: the current user and
// token, mirrored into a CredentialStore so the state survives restarts.
type Session struct {
	mu     sync.RWMutex
	client *Client
	store  CredentialStore
	user   *User
}

// NewSession wraps a client and a credential store.
func NewSession(client *Client, store CredentialStore) *Session {
	return &Session{client: client, store: store}
}

// Restore loads persisted credentials into the session. A missing or
// partial record leaves the session unauthenticated without error.
func (s *Session) Restore() error {
	token, err := s.store.Get(tokenKey)
	if err != nil {
		return err
	}
	raw, err := s.store.Get(userKey)
	if err != nil {
		return err
	}
	if token == "" || raw == "" {
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Unreadable state is discarded rather than surfaced.
		return s.clearLocal()
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.client.SetToken(token)
	return nil
}

// Login authenticates and persists the resulting credentials.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	user, token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(user, token); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an account and signs the session in as the new user.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*User, error) {
	user, token, err := s.client.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(user, token); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout notifies the server, then clears local state. Local state is
// cleared even when the server call fails, so a dead server cannot keep
// the client signed in.
func (s *Session) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	if clearErr := s.clearLocal(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// User returns the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether the session holds credentials.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.client.Token() != ""
}

// RefreshUser re-fetches the signed-in user's profile and persists it.
func (s *Session) RefreshUser(ctx context.Context) (*User, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(user, s.client.Token()); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Session) adopt(user *User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(tokenKey, token); err != nil {
		return err
	}
	if err := s.store.Set(userKey, string(raw)); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.client.SetToken(token)
	return nil
}

func (s *Session) clearLocal() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.client.SetToken("")

	if err := s.store.Delete(tokenKey); err != nil {
		return err
	}
	return s.store.Delete(userKey)
}
