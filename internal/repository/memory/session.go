package memory

import (
	"context"
	"sync"

	"github.com/movietalk/feed-client/domain"
)

// session keeps the token for the lifetime of the process only
type session struct {
	mu    sync.RWMutex
	token string
}

var _ domain.Session = (*session)(nil)

func NewSession() *session {
	return &session{}
}

func (s *session) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *session) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *session) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
